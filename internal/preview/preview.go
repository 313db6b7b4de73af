// Package preview renders a record set head as an aligned text table for
// the post-write console summary.
package preview

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"grizstats/internal/recordset"
)

// maxCellWidth keeps very long cells (URLs, timestamps) from blowing up the
// console layout.
const maxCellWidth = 28

// Head renders the first n rows of a record set, header included, with
// columns padded to their display width.
func Head(rs *recordset.RecordSet, n int) string {
	if n > rs.Len() {
		n = rs.Len()
	}

	table := make([][]string, 0, n+1)
	table = append(table, rs.Columns)

	for _, row := range rs.Rows[:n] {
		cells := make([]string, len(rs.Columns))

		for i, col := range rs.Columns {
			cells[i] = clip(recordset.AsString(row[col]))
		}

		table = append(table, cells)
	}

	// Column widths by display width, not byte length.
	widths := make([]int, len(rs.Columns))

	for _, cells := range table {
		for i, cell := range cells {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder

	for rowIdx, cells := range table {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}

			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}

		b.WriteString("\n")

		if rowIdx == 0 {
			for i, w := range widths {
				if i > 0 {
					b.WriteString("  ")
				}

				b.WriteString(strings.Repeat("-", w))
			}

			b.WriteString("\n")
		}
	}

	return b.String()
}

func clip(s string) string {
	if runewidth.StringWidth(s) <= maxCellWidth {
		return s
	}

	return runewidth.Truncate(s, maxCellWidth, "…")
}
