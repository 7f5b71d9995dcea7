// Package interaction holds list ordering for the email views.
package interaction

import (
	"fmt"
	"sort"
	"strings"

	"github.com/penwyp/go-jobflow/internal/core/model"
)

// SortField represents the field to sort emails by
type SortField int

const (
	SortByReceived SortField = iota
	SortByConfidence
	SortByPriority
	SortBySender
)

// SortOrder represents the sort order
type SortOrder int

const (
	SortAscending SortOrder = iota
	SortDescending
)

var sortFieldNames = map[string]SortField{
	"received":   SortByReceived,
	"confidence": SortByConfidence,
	"priority":   SortByPriority,
	"sender":     SortBySender,
}

var priorityRank = map[string]int{
	model.PriorityLow:    1,
	model.PriorityMedium: 2,
	model.PriorityHigh:   3,
}

// EmailSorter orders emails. Ties keep their input order.
type EmailSorter struct {
	field SortField
	order SortOrder
}

// NewEmailSorter creates a sorter with newest emails first.
func NewEmailSorter() *EmailSorter {
	return &EmailSorter{
		field: SortByReceived,
		order: SortDescending,
	}
}

// ParseSort builds a sorter from "field" or "field:asc|desc".
func ParseSort(value string) (*EmailSorter, error) {
	s := NewEmailSorter()
	if value == "" {
		return s, nil
	}

	name, dir, _ := strings.Cut(strings.ToLower(value), ":")
	field, ok := sortFieldNames[name]
	if !ok {
		return nil, fmt.Errorf("unknown sort field %q", name)
	}
	s.field = field

	switch dir {
	case "", "desc":
		s.order = SortDescending
	case "asc":
		s.order = SortAscending
	default:
		return nil, fmt.Errorf("unknown sort order %q", dir)
	}
	return s, nil
}

// SetField changes the sort field
func (s *EmailSorter) SetField(field SortField) {
	s.field = field
}

// ToggleOrder flips between ascending and descending.
func (s *EmailSorter) ToggleOrder() {
	if s.order == SortAscending {
		s.order = SortDescending
	} else {
		s.order = SortAscending
	}
}

// Sort orders emails in place.
func (s *EmailSorter) Sort(emails []model.Email) {
	sort.SliceStable(emails, func(i, j int) bool {
		c := s.compare(emails[i], emails[j])
		if s.order == SortDescending {
			return c > 0
		}
		return c < 0
	})
}

func (s *EmailSorter) compare(a, b model.Email) int {
	switch s.field {
	case SortByConfidence:
		return a.Confidence - b.Confidence
	case SortByPriority:
		return priorityRank[a.Priority] - priorityRank[b.Priority]
	case SortBySender:
		return strings.Compare(strings.ToLower(a.Sender), strings.ToLower(b.Sender))
	default:
		return a.ReceivedAt.Compare(b.ReceivedAt)
	}
}
