package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

// FormatNumber abbreviates large counts (1.5K, 2.0M).
func FormatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatCurrency renders whole dollars with thousands separators.
func FormatCurrency(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s$%s.00", sign, b.String())
}

// ParseCurrency reads fixture money strings such as "$2,450,000" or
// "2450000". Anything after a decimal point is dropped.
func ParseCurrency(value string) (int64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(value)
	if idx := strings.IndexByte(cleaned, '.'); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	if cleaned == "" {
		return 0, fmt.Errorf("empty currency value %q", value)
	}
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid currency value %q: %w", value, err)
	}
	return n, nil
}

// TimeAgo renders t relative to now ("just now", "5m ago", "3h ago",
// "2d ago"); a week or older falls back to "Jan 2".
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// Truncate shortens s to a display width of maxWidth, adding an ellipsis.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// Humanize turns snake_case enum values into words ("pending_review" ->
// "pending review").
func Humanize(value string) string {
	return strings.ReplaceAll(value, "_", " ")
}
