// Package recordset provides an ordered, loosely-typed tabular record model
// and the column-level normalization steps shared by every pipeline.
package recordset

import (
	"strconv"
	"strings"
)

// Row maps a column label to a cell value. A nil value is a null cell; other
// values are string, int64, float64 or bool.
type Row map[string]any

// RecordSet is an ordered sequence of rows with an explicit column order.
type RecordSet struct {
	Columns []string
	Rows    []Row
}

// New creates an empty record set with the given column order.
func New(columns ...string) *RecordSet {
	return &RecordSet{
		Columns: append([]string{}, columns...),
	}
}

// Append adds a row to the record set.
func (rs *RecordSet) Append(row Row) {
	rs.Rows = append(rs.Rows, row)
}

// Len returns the number of rows.
func (rs *RecordSet) Len() int {
	return len(rs.Rows)
}

// HasColumn reports whether the named column is present.
func (rs *RecordSet) HasColumn(name string) bool {
	for _, col := range rs.Columns {
		if col == name {
			return true
		}
	}

	return false
}

// clone copies columns and rows so transforms never mutate their input.
func (rs *RecordSet) clone() *RecordSet {
	out := New(rs.Columns...)
	out.Rows = make([]Row, 0, len(rs.Rows))

	for _, row := range rs.Rows {
		copied := make(Row, len(row))
		for k, v := range row {
			copied[k] = v
		}

		out.Rows = append(out.Rows, copied)
	}

	return out
}

// CanonicalLabel trims a column label, lower-cases it, and replaces spaces
// with underscores. Applying it twice yields the same result.
func CanonicalLabel(label string) string {
	label = strings.TrimSpace(label)
	label = strings.ToLower(label)
	label = strings.ReplaceAll(label, " ", "_")

	return label
}

// Canonicalize returns a record set with every column label canonicalized.
// Rows keep their order and count; cell values are untouched.
func (rs *RecordSet) Canonicalize() *RecordSet {
	out := New()
	out.Rows = make([]Row, 0, len(rs.Rows))

	renames := make(map[string]string, len(rs.Columns))

	for _, col := range rs.Columns {
		canonical := CanonicalLabel(col)
		renames[col] = canonical
		out.Columns = append(out.Columns, canonical)
	}

	for _, row := range rs.Rows {
		copied := make(Row, len(row))

		for k, v := range row {
			if canonical, ok := renames[k]; ok {
				copied[canonical] = v
			} else {
				copied[CanonicalLabel(k)] = v
			}
		}

		out.Append(copied)
	}

	return out
}

// Rename maps source column names to new names where present. Columns not
// named in the map pass through unchanged.
func (rs *RecordSet) Rename(names map[string]string) *RecordSet {
	out := New()
	out.Rows = make([]Row, 0, len(rs.Rows))

	for _, col := range rs.Columns {
		if renamed, ok := names[col]; ok {
			out.Columns = append(out.Columns, renamed)
		} else {
			out.Columns = append(out.Columns, col)
		}
	}

	for _, row := range rs.Rows {
		copied := make(Row, len(row))

		for k, v := range row {
			if renamed, ok := names[k]; ok {
				copied[renamed] = v
			} else {
				copied[k] = v
			}
		}

		out.Append(copied)
	}

	return out
}

// Keep restricts the record set to the named columns, in the given order.
// Columns absent from the input are simply skipped; asking for a column the
// source never had is not an error.
func (rs *RecordSet) Keep(names ...string) *RecordSet {
	out := New()
	out.Rows = make([]Row, 0, len(rs.Rows))

	for _, name := range names {
		if rs.HasColumn(name) {
			out.Columns = append(out.Columns, name)
		}
	}

	for _, row := range rs.Rows {
		copied := make(Row, len(out.Columns))

		for _, name := range out.Columns {
			copied[name] = row[name]
		}

		out.Append(copied)
	}

	return out
}

// DropHeaderEchoes removes rows whose named field is null or textually equal
// to the field's own header label, case-insensitively. Paginated HTML tables
// repeat their header text as data rows; this strips that artifact.
func (rs *RecordSet) DropHeaderEchoes(field string) *RecordSet {
	if !rs.HasColumn(field) {
		return rs.clone()
	}

	out := New(rs.Columns...)

	for _, row := range rs.Rows {
		v, ok := row[field]
		if !ok || v == nil {
			continue
		}

		if strings.EqualFold(strings.TrimSpace(AsString(v)), field) {
			continue
		}

		copied := make(Row, len(row))
		for k, val := range row {
			copied[k] = val
		}

		out.Append(copied)
	}

	return out
}

// Filter returns the rows for which keep returns true.
func (rs *RecordSet) Filter(keep func(Row) bool) *RecordSet {
	out := New(rs.Columns...)

	for _, row := range rs.Rows {
		if !keep(row) {
			continue
		}

		copied := make(Row, len(row))
		for k, v := range row {
			copied[k] = v
		}

		out.Append(copied)
	}

	return out
}

// InsertConst inserts a column holding the same value in every row at the
// given position. Positions past the end append.
func (rs *RecordSet) InsertConst(pos int, name string, value any) *RecordSet {
	out := rs.clone()

	if pos < 0 {
		pos = 0
	}

	if pos > len(out.Columns) {
		pos = len(out.Columns)
	}

	cols := make([]string, 0, len(out.Columns)+1)
	cols = append(cols, out.Columns[:pos]...)
	cols = append(cols, name)
	cols = append(cols, out.Columns[pos:]...)
	out.Columns = cols

	for _, row := range out.Rows {
		row[name] = value
	}

	return out
}

// AppendConst appends a column holding the same value in every row.
func (rs *RecordSet) AppendConst(name string, value any) *RecordSet {
	return rs.InsertConst(len(rs.Columns), name, value)
}

// Apply sets the named column in every row to the result of fn for that row,
// adding the column at the end if it does not exist yet.
func (rs *RecordSet) Apply(name string, fn func(Row) any) *RecordSet {
	out := rs.clone()

	if !out.HasColumn(name) {
		out.Columns = append(out.Columns, name)
	}

	for _, row := range out.Rows {
		row[name] = fn(row)
	}

	return out
}

// CoerceNumeric converts the named fields to int64 or float64 in every row.
// Values that fail to parse become null instead of raising an error.
func (rs *RecordSet) CoerceNumeric(fields ...string) *RecordSet {
	out := rs.clone()

	for _, field := range fields {
		if !out.HasColumn(field) {
			continue
		}

		for _, row := range out.Rows {
			row[field] = ToNumber(row[field])
		}
	}

	return out
}

// ToNumber parses a value as int64 or float64, or returns nil when it cannot.
func ToNumber(v any) any {
	switch n := v.(type) {
	case nil:
		return nil
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return n
	case bool:
		return nil
	}

	s := strings.TrimSpace(AsString(v))
	if s == "" {
		return nil
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	return nil
}

// AsString renders a cell value for text comparison and CSV output. Null
// renders as the empty string.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return ""
	}
}
