// Package layout sizes output to the terminal.
package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/penwyp/go-jobflow/internal/util"
	"golang.org/x/term"
)

const (
	fallbackWidth = 100
	minWidth      = 60
	maxWidth      = 160
)

// Sizer measures and pads strings by display width.
type Sizer struct {
	fd int
}

// NewSizer returns a sizer for standard output.
func NewSizer() Sizer {
	return Sizer{fd: int(os.Stdout.Fd())}
}

// PadString pads s to width display cells.
func (s Sizer) PadString(str string, width int, leftAlign bool) string {
	actual := runewidth.StringWidth(str)
	if actual >= width {
		return str
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return str + padding
	}
	return padding + str
}

// IsTerminal reports whether output goes to a terminal.
func (s Sizer) IsTerminal() bool {
	return term.IsTerminal(s.fd)
}

// MaxWidth is the usable table width: 0 when output is not a terminal
// (no limit), otherwise the terminal width clamped to a readable range.
func (s Sizer) MaxWidth() int {
	if !s.IsTerminal() {
		return 0
	}
	width, _, err := term.GetSize(s.fd)
	if err != nil || width <= 0 {
		width = fallbackWidth
	}
	if width < minWidth {
		width = minWidth
	}
	if width > maxWidth {
		width = maxWidth
	}
	util.LogDebugf("table max width %d", width)
	return width
}
