package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const minColumnWidth = 6

type TableFormatter struct {
	maxWidth int
}

// NewTableFormatter creates a box-drawn table formatter. Tables wider than
// maxWidth have their widest columns truncated; 0 disables the limit.
func NewTableFormatter(maxWidth int) *TableFormatter {
	return &TableFormatter{maxWidth: maxWidth}
}

func (f *TableFormatter) Format(w io.Writer, t *Table) error {
	widths := f.calculateColumnWidths(t)
	if len(widths) == 0 {
		return nil
	}

	var b strings.Builder
	f.writeBorder(&b, widths, "top")
	f.writeRow(&b, t, t.Headers, widths, true)
	f.writeBorder(&b, widths, "middle")
	for _, row := range t.Rows {
		f.writeRow(&b, t, row, widths, false)
	}
	if len(t.Footer) > 0 {
		f.writeBorder(&b, widths, "middle")
		f.writeRow(&b, t, t.Footer, widths, false)
	}
	f.writeBorder(&b, widths, "bottom")

	_, err := io.WriteString(w, b.String())
	return err
}

// calculateColumnWidths sizes each column to its widest cell, then shrinks
// the widest columns until the table fits maxWidth.
func (f *TableFormatter) calculateColumnWidths(t *Table) []int {
	cols := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}

	widths := make([]int, cols)
	measure := func(row []string) {
		for i, cell := range row {
			if w := ansi.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, row := range t.Rows {
		measure(row)
	}
	measure(t.Footer)

	if f.maxWidth <= 0 {
		return widths
	}
	for total(widths) > f.maxWidth {
		widest := 0
		for i := range widths {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColumnWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

// total is the rendered width including borders and padding.
func total(widths []int) int {
	sum := 1
	for _, w := range widths {
		sum += w + 3
	}
	return sum
}

func (f *TableFormatter) writeBorder(b *strings.Builder, widths []int, borderType string) {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	b.WriteByte('\n')
}

func (f *TableFormatter) writeRow(b *strings.Builder, t *Table, values []string, widths []int, header bool) {
	b.WriteString("│")
	for i, width := range widths {
		cell := ""
		if i < len(values) {
			cell = truncate(values[i], width)
		}
		pad := strings.Repeat(" ", width-ansi.StringWidth(cell))
		if !header && t.align(i) == AlignRight {
			fmt.Fprintf(b, " %s%s │", pad, cell)
		} else {
			fmt.Fprintf(b, " %s%s │", cell, pad)
		}
	}
	b.WriteByte('\n')
}

// truncate shortens a cell that may carry ANSI color codes.
func truncate(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return ansi.Truncate(s, width, "")
	}
	return ansi.Truncate(s, width, "...")
}
