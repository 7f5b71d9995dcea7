package timeline

import "time"

// EventType is the kind of record behind a timeline event.
type EventType string

const (
	EventEmail     EventType = "email"
	EventCall      EventType = "call"
	EventMilestone EventType = "milestone"
)

// TypeAll disables type filtering.
const TypeAll = "all"

// ValidTypes lists the accepted type filters.
var ValidTypes = []string{TypeAll, string(EventEmail), string(EventCall), string(EventMilestone)}

// IsValidType reports whether t is an accepted type filter. Empty means all.
func IsValidType(t string) bool {
	if t == "" {
		return true
	}
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Project phases
const (
	PhaseCurrent         = "Current"
	PhasePreviousQuarter = "Previous Quarter"
	PhaseMidProject      = "Mid-Project"
	PhaseEarlyProject    = "Early Project"
	PhaseInitiation      = "Initiation"
	PhaseClosure         = "Closure"
)

// Event is one entry of a project's communication history
type Event struct {
	ID             string    `json:"id"`
	Type           EventType `json:"type"`
	Timestamp      time.Time `json:"timestamp"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Participants   []string  `json:"participants,omitempty"`
	Classification string    `json:"classification,omitempty"`
	Priority       string    `json:"priority,omitempty"`
	Status         string    `json:"status,omitempty"`
	Attachments    []string  `json:"attachments,omitempty"`
	Phase          string    `json:"projectPhase,omitempty"`
}

// DayGroup holds the events that fall on one calendar day.
type DayGroup struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Events []Event `json:"events"`
}

// Counts tallies events by type.
type Counts struct {
	Emails     int `json:"emails"`
	Calls      int `json:"calls"`
	Milestones int `json:"milestones"`
	Total      int `json:"total"`
}
