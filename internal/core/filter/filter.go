// Package filter narrows an email collection by the dashboard's filter
// panel. Filtering is stable: matches keep their input order.
package filter

import (
	"strings"
	"time"

	"github.com/penwyp/go-jobflow/internal/core/constants"
	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/util"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Engine evaluates a State against emails. Date buckets are measured from
// the engine's clock, so results for "today" or "week" move with time.
type Engine struct {
	clock util.Clock
}

// NewEngine creates an engine; a nil clock uses the global time provider.
func NewEngine(clock util.Clock) *Engine {
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	return &Engine{clock: clock}
}

// Apply returns the emails matching every active field of state.
func (e *Engine) Apply(records []model.Email, state State) []model.Email {
	now := e.clock.Now()
	search := foldCase(state.Search)

	result := make([]model.Email, 0, len(records))
	for _, email := range records {
		if matches(email, state, search, now) {
			result = append(result, email)
		}
	}

	util.LogDebug("email filter applied",
		util.F("active", state.ActiveCount()),
		util.F("matched", len(result)),
		util.F("total", len(records)))
	return result
}

func matches(email model.Email, state State, search string, now time.Time) bool {
	if search != "" && !matchesSearch(email, search) {
		return false
	}
	if state.Classification != "" && email.Classification != state.Classification {
		return false
	}
	if state.Confidence != "" && !InConfidenceBucket(email.Confidence, state.Confidence) {
		return false
	}
	if state.Priority != "" && email.Priority != state.Priority {
		return false
	}
	if state.Status != "" && email.Status != state.Status {
		return false
	}
	if state.Project != "" && email.ProjectName != state.Project {
		return false
	}
	if state.DateRange != "" && !InDateRange(email.ReceivedAt, state.DateRange, now) {
		return false
	}
	if state.Sender != "" && !InSenderBucket(email.Sender, state.Sender) {
		return false
	}
	return true
}

func matchesSearch(email model.Email, folded string) bool {
	return strings.Contains(foldCase(email.Subject), folded) ||
		strings.Contains(foldCase(email.Sender), folded) ||
		strings.Contains(foldCase(email.Snippet), folded)
}

// foldCase lowercases without full case folding, so "ß" stays "ß". A fresh
// Caser is built per call; Casers are stateful and not safe for concurrent
// use.
func foldCase(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}

// InConfidenceBucket reports whether confidence falls in bucket. Buckets
// are half-open: 80 is high, 60 is medium, 59 is low. Unknown buckets do
// not constrain.
func InConfidenceBucket(confidence int, bucket string) bool {
	switch bucket {
	case ConfidenceHigh:
		return confidence >= constants.HighConfidence
	case ConfidenceMedium:
		return confidence >= constants.MediumConfidence && confidence < constants.HighConfidence
	case ConfidenceLow:
		return confidence < constants.MediumConfidence
	}
	return true
}

// ConfidenceBucket names the bucket a confidence value belongs to.
func ConfidenceBucket(confidence int) string {
	switch {
	case confidence >= constants.HighConfidence:
		return ConfidenceHigh
	case confidence >= constants.MediumConfidence:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// InDateRange reports whether t falls in the named bucket relative to now.
// Age is measured in fractional days. "yesterday" starts strictly after
// one day, so an email exactly one day old is "today" only.
func InDateRange(t time.Time, bucket string, now time.Time) bool {
	age := util.DaysBetween(t, now)
	switch bucket {
	case RangeToday:
		return age <= constants.TodayMaxDays
	case RangeYesterday:
		return age > constants.TodayMaxDays && age <= constants.YesterdayMaxDays
	case RangeWeek:
		return age <= constants.WeekMaxDays
	case RangeMonth:
		return age <= constants.MonthMaxDays
	case RangeQuarter:
		return age <= constants.QuarterMaxDays
	}
	return true
}

// InSenderBucket classifies a sender address. Domain checks are
// case-sensitive; keyword checks are not.
func InSenderBucket(sender, bucket string) bool {
	switch bucket {
	case SenderGovernment:
		return strings.Contains(sender, ".gov")
	case SenderCommercial:
		return strings.Contains(sender, ".com")
	case SenderConsulting:
		return strings.Contains(strings.ToLower(sender), "consulting")
	case SenderSuppliers:
		return strings.Contains(strings.ToLower(sender), "supply")
	}
	return true
}
