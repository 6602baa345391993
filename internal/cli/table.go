package cli

import (
	"strings"
)

// Align controls how a column's cells are padded.
type Align int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Align = iota
	// AlignRight pads on the left, for numbers.
	AlignRight
)

// Table represents a simple table formatter with dynamic column widths.
// The last column is never padded, so it may hold escape sequences.
type Table struct {
	headers []string
	rows    [][]string
	padding int
	align   map[int]Align
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
		align:   make(map[int]Align),
	}
}

// SetAlign sets the alignment of column colIndex.
func (t *Table) SetAlign(colIndex int, a Align) {
	t.align[colIndex] = a
}

// AddRow adds a row to the table, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	if len(row) != len(t.headers) {
		newRow := make([]string, len(t.headers))
		copy(newRow, row)
		row = newRow
	}
	t.rows = append(t.rows, row)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], len(cell))
		}
	}

	var result strings.Builder
	sep := strings.Repeat(" ", t.padding)

	t.writeLine(&result, t.headers, colWidths, sep)

	rule := make([]string, len(t.headers))
	for i, w := range colWidths {
		rule[i] = strings.Repeat("-", w)
	}
	result.WriteString(strings.Join(rule, sep))
	result.WriteString("\n")

	for _, row := range t.rows {
		t.writeLine(&result, row, colWidths, sep)
	}

	return result.String()
}

func (t *Table) writeLine(b *strings.Builder, cells []string, widths []int, sep string) {
	last := len(cells) - 1
	parts := make([]string, len(cells))
	for i, cell := range cells {
		switch {
		case t.align[i] == AlignRight:
			parts[i] = padLeft(cell, widths[i])
		case i == last:
			parts[i] = cell
		default:
			parts[i] = padRight(cell, widths[i])
		}
	}
	b.WriteString(strings.Join(parts, sep))
	b.WriteString("\n")
}

// padRight pads a string with spaces on the right to reach the desired width.
// If the string is already longer than or equal to the width, it is returned unchanged.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft is padRight's mirror.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
