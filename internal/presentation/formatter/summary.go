package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Section is a titled list of label/value pairs, used for the overview and
// detail views.
type Section struct {
	Title string
	Items []Item
}

// Item is one labelled value.
type Item struct {
	Label string
	Value string
}

// Add appends a labelled value.
func (s *Section) Add(label, value string) {
	s.Items = append(s.Items, Item{Label: label, Value: value})
}

// Addf appends a labelled, formatted value.
func (s *Section) Addf(label, format string, args ...interface{}) {
	s.Add(label, fmt.Sprintf(format, args...))
}

// WriteSections renders sections with labels aligned inside each section.
func WriteSections(w io.Writer, sections ...Section) error {
	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		if s.Title != "" {
			b.WriteString(s.Title)
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("─", runewidth.StringWidth(s.Title)))
			b.WriteByte('\n')
		}

		labelWidth := 0
		for _, item := range s.Items {
			if lw := runewidth.StringWidth(item.Label); lw > labelWidth {
				labelWidth = lw
			}
		}
		for _, item := range s.Items {
			pad := strings.Repeat(" ", labelWidth-runewidth.StringWidth(item.Label))
			fmt.Fprintf(&b, "  %s:%s %s\n", item.Label, pad, item.Value)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
