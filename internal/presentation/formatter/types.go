package formatter

import (
	"fmt"
	"io"
)

// Align controls how a column's cells are padded.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a rendered view: a header row, data rows and an optional
// footer row. Align has one entry per column; missing entries are left
// aligned.
type Table struct {
	Headers []string
	Rows    [][]string
	Footer  []string
	Align   []Align
}

// AddRow appends a data row.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

func (t *Table) align(col int) Align {
	if col < len(t.Align) {
		return t.Align[col]
	}
	return AlignLeft
}

// Formatter writes a table in one output format.
type Formatter interface {
	Format(w io.Writer, t *Table) error
}

// New returns the formatter for a tabular output format. maxWidth caps the
// table formatter's total width; 0 means unlimited. JSON output is written
// from the records themselves with WriteJSON.
func New(format string, maxWidth int) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(maxWidth), nil
	case "csv":
		return NewCSVFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported tabular format %q", format)
	}
}
