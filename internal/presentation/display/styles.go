// Package display renders the dashboard's detail views and colored badges.
package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/penwyp/go-jobflow/internal/core/filter"
	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/util"
)

var (
	red    = lipgloss.Color("#DC2626")
	amber  = lipgloss.Color("#D97706")
	green  = lipgloss.Color("#16A34A")
	blue   = lipgloss.Color("#2563EB")
	orange = lipgloss.Color("#EA580C")
	gray   = lipgloss.Color("#6B7280")
)

// Styles renders badges for one output. Colors are dropped automatically
// when the output is not a color terminal. A nil *Styles renders the raw
// values, for machine-readable output.
type Styles struct {
	r     *lipgloss.Renderer
	Title lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style
}

// NewStyles creates styles bound to w.
func NewStyles(w io.Writer) *Styles {
	r := lipgloss.NewRenderer(w)
	return &Styles{
		r:     r,
		Title: r.NewStyle().Bold(true).Foreground(blue),
		Muted: r.NewStyle().Foreground(gray),
		Bold:  r.NewStyle().Bold(true),
	}
}

func (s *Styles) colored(c lipgloss.Color, text string) string {
	return s.r.NewStyle().Foreground(c).Render(text)
}

// Priority renders a priority or urgency level with its dot.
func (s *Styles) Priority(p string) string {
	if s == nil {
		return p
	}
	switch p {
	case model.PriorityHigh:
		return s.colored(red, "● high")
	case model.PriorityMedium:
		return s.colored(amber, "● medium")
	case model.PriorityLow:
		return s.colored(green, "● low")
	}
	return s.colored(gray, "● "+p)
}

// Confidence renders a score colored by its filter bucket.
func (s *Styles) Confidence(c int) string {
	if s == nil {
		return fmt.Sprintf("%d", c)
	}
	text := fmt.Sprintf("%d%%", c)
	switch filter.ConfidenceBucket(c) {
	case filter.ConfidenceHigh:
		return s.colored(green, text)
	case filter.ConfidenceMedium:
		return s.colored(amber, text)
	default:
		return s.colored(red, text)
	}
}

// Classification renders an email class.
func (s *Styles) Classification(c string) string {
	if s == nil {
		return c
	}
	switch c {
	case model.ClassificationBid:
		return s.colored(green, c)
	case model.ClassificationEnquiry:
		return s.colored(blue, c)
	case model.ClassificationSpam:
		return s.colored(gray, c)
	}
	return c
}

// Status renders an email or project status in words.
func (s *Styles) Status(status string) string {
	if s == nil {
		return status
	}
	text := util.Humanize(status)
	switch status {
	case model.StatusAutoRouted, model.ProjectCompleted:
		return s.colored(green, text)
	case model.StatusPendingReview, model.ProjectBidding:
		return s.colored(amber, text)
	case model.StatusUrgent:
		return s.colored(red, text)
	case model.StatusProcessing, model.ProjectInProgress:
		return s.colored(blue, text)
	}
	return s.colored(gray, text)
}

// LogLevel renders a system log level.
func (s *Styles) LogLevel(level string) string {
	if s == nil {
		return level
	}
	switch level {
	case model.LogSuccess:
		return s.colored(green, level)
	case model.LogInfo:
		return s.colored(blue, level)
	case model.LogWarn:
		return s.colored(amber, level)
	case model.LogError:
		return s.colored(red, level)
	}
	return s.colored(gray, level)
}

// EventType renders a timeline event kind.
func (s *Styles) EventType(t string) string {
	if s == nil {
		return t
	}
	switch t {
	case "email":
		return s.colored(blue, t)
	case "call":
		return s.colored(green, t)
	case "milestone":
		return s.colored(orange, t)
	}
	return t
}
