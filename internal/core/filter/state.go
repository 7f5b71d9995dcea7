package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/penwyp/go-jobflow/internal/core/model"
)

// ErrInvalidValue is returned for a value outside a field's choices.
var ErrInvalidValue = errors.New("invalid filter value")

// Field names one constraint of the email filter panel.
type Field string

const (
	FieldSearch         Field = "search"
	FieldClassification Field = "classification"
	FieldConfidence     Field = "confidence"
	FieldPriority       Field = "priority"
	FieldStatus         Field = "status"
	FieldProject        Field = "project"
	FieldDateRange      Field = "dateRange"
	FieldSender         Field = "sender"
)

// Fields lists every filter field in panel order.
var Fields = []Field{
	FieldSearch, FieldClassification, FieldConfidence, FieldPriority,
	FieldStatus, FieldProject, FieldDateRange, FieldSender,
}

// Confidence buckets
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Date range buckets
const (
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeWeek      = "week"
	RangeMonth     = "month"
	RangeQuarter   = "quarter"
)

// Sender buckets
const (
	SenderGovernment = "government"
	SenderCommercial = "commercial"
	SenderConsulting = "consulting"
	SenderSuppliers  = "suppliers"
)

var (
	ValidConfidenceBuckets = []string{ConfidenceHigh, ConfidenceMedium, ConfidenceLow}
	ValidDateRanges        = []string{RangeToday, RangeYesterday, RangeWeek, RangeMonth, RangeQuarter}
	ValidSenderBuckets     = []string{SenderGovernment, SenderCommercial, SenderConsulting, SenderSuppliers}
)

// AllValue is what a select control sends to mean "no constraint".
const AllValue = "all"

// State holds one value per field; the empty string means the field does
// not constrain the result.
type State struct {
	Search         string `json:"search"`
	Classification string `json:"classification"`
	Confidence     string `json:"confidence"`
	Priority       string `json:"priority"`
	Status         string `json:"status"`
	Project        string `json:"project"`
	DateRange      string `json:"dateRange"`
	Sender         string `json:"sender"`
}

// ParseField maps a field name (camelCase or kebab-case) to a Field.
func ParseField(name string) (Field, error) {
	normalized := strings.ToLower(strings.ReplaceAll(name, "-", ""))
	for _, f := range Fields {
		if strings.ToLower(string(f)) == normalized {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter field %q", name)
}

// Get returns the current value of a field.
func (s *State) Get(field Field) string {
	if p := s.slot(field); p != nil {
		return *p
	}
	return ""
}

// Set assigns a field. "all" clears it, matching the select controls.
func (s *State) Set(field Field, value string) {
	p := s.slot(field)
	if p == nil {
		return
	}
	if value == AllValue {
		value = ""
	}
	*p = value
}

// Clear removes the constraint on one field.
func (s *State) Clear(field Field) {
	s.Set(field, "")
}

// ClearAll resets every field.
func (s *State) ClearAll() {
	*s = State{}
}

// Active returns the constrained fields in panel order.
func (s *State) Active() []Field {
	var active []Field
	for _, f := range Fields {
		if s.Get(f) != "" {
			active = append(active, f)
		}
	}
	return active
}

// ActiveCount is the number of constrained fields.
func (s *State) ActiveCount() int {
	return len(s.Active())
}

// IsEmpty reports whether no field is constrained.
func (s *State) IsEmpty() bool {
	return s.ActiveCount() == 0
}

// Choices lists the accepted values of a select field. Free-text fields
// (search, project) return nil.
func Choices(field Field) []string {
	switch field {
	case FieldClassification:
		return model.ValidClassifications
	case FieldConfidence:
		return ValidConfidenceBuckets
	case FieldPriority:
		return model.ValidPriorities
	case FieldStatus:
		return model.ValidStatuses
	case FieldDateRange:
		return ValidDateRanges
	case FieldSender:
		return ValidSenderBuckets
	}
	return nil
}

// ValidateValue checks value against the choices of field. Empty and "all"
// are always accepted.
func ValidateValue(field Field, value string) error {
	choices := Choices(field)
	if choices == nil || value == "" || value == AllValue {
		return nil
	}
	for _, c := range choices {
		if c == value {
			return nil
		}
	}
	return fmt.Errorf("%w %q for %s (want %s)", ErrInvalidValue, value, field, strings.Join(choices, ", "))
}

func (s *State) slot(field Field) *string {
	switch field {
	case FieldSearch:
		return &s.Search
	case FieldClassification:
		return &s.Classification
	case FieldConfidence:
		return &s.Confidence
	case FieldPriority:
		return &s.Priority
	case FieldStatus:
		return &s.Status
	case FieldProject:
		return &s.Project
	case FieldDateRange:
		return &s.DateRange
	case FieldSender:
		return &s.Sender
	}
	return nil
}
