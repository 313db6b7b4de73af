package recordset

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Sports-Reference renders schedule dates as
// "Mon, Nov 6, 2023"; manual exports and API payloads use the rest.
var dateLayouts = []string{
	"2006-01-02",
	"Mon, Jan 2, 2006",
	"Mon, January 2, 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"1/2/2006",
	"1/2/06",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseDate parses a date value permissively and renders it as YYYY-MM-DD.
// Unparseable values become nil.
func ParseDate(v any) any {
	if v == nil {
		return nil
	}

	s := strings.TrimSpace(AsString(v))
	if s == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return nil
}

// CoerceDate converts the named field to a YYYY-MM-DD string in every row.
// Values that fail to parse become null instead of raising an error.
func (rs *RecordSet) CoerceDate(field string) *RecordSet {
	if !rs.HasColumn(field) {
		return rs.clone()
	}

	out := rs.clone()
	for _, row := range out.Rows {
		row[field] = ParseDate(row[field])
	}

	return out
}
