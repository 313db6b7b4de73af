// Package htmltable extracts an HTML table into a record set.
package htmltable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"grizstats/internal/recordset"
)

// ErrTableNotFound indicates the page has no table with the requested id.
var ErrTableNotFound = errors.New("table not found")

// Extract parses html and returns the table with the given id as a record
// set. Header labels come from the last header row; blank header cells get
// positional "unnamed:_<n>" labels so they survive canonicalization.
func Extract(html, tableID string) (*recordset.RecordSet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table#" + tableID).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: #%s", ErrTableNotFound, tableID)
	}

	// The HTML5 parser wraps stray rows in an implicit tbody, so a table
	// without a thead needs its first row claimed as the header explicitly.
	headerRow := table.Find("thead tr").Last()
	bodyRows := table.Find("tbody tr")

	if headerRow.Length() == 0 {
		allRows := table.Find("tr")
		if allRows.Length() == 0 {
			return recordset.New(), nil
		}

		headerRow = allRows.First()
		bodyRows = allRows.Slice(1, goquery.ToEnd)
	}

	rs := recordset.New()

	headerRow.Find("th, td").Each(func(i int, cell *goquery.Selection) {
		label := strings.TrimSpace(cell.Text())
		if label == "" {
			label = fmt.Sprintf("unnamed:_%d", i)
		}

		rs.Columns = append(rs.Columns, label)
	})

	bodyRows.Each(func(_ int, tr *goquery.Selection) {
		row := make(recordset.Row, len(rs.Columns))

		tr.Find("th, td").Each(func(i int, cell *goquery.Selection) {
			if i >= len(rs.Columns) {
				return
			}

			text := strings.TrimSpace(cell.Text())
			if text == "" {
				row[rs.Columns[i]] = nil

				return
			}

			row[rs.Columns[i]] = text
		})

		// Cells past the row's end stay null.
		for _, col := range rs.Columns {
			if _, ok := row[col]; !ok {
				row[col] = nil
			}
		}

		rs.Append(row)
	})

	return rs, nil
}
