package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/penwyp/go-jobflow/internal/core/constants"
	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/util"
)

const dayLayout = "2006-01-02"

// Builder builds a unified, newest-first timeline for one project from its
// emails, calls and milestones.
type Builder struct {
	clock    util.Clock
	location *time.Location
}

// NewBuilder creates a builder. A nil clock uses the global time provider;
// a nil location uses the provider's timezone.
func NewBuilder(clock util.Clock, location *time.Location) *Builder {
	if clock == nil {
		clock = util.GetTimeProvider()
	}
	if location == nil {
		location = util.GetTimeProvider().Location()
	}
	return &Builder{clock: clock, location: location}
}

// Build projects the records belonging to projectName into events. When
// project is non-nil its start (and, for completed projects, end) become
// milestones. Records are matched on ProjectID when both sides have one,
// otherwise on the project name.
func (b *Builder) Build(projectName string, emails []model.Email, calls []model.Call, project *model.Project) []Event {
	projectID := ""
	if project != nil {
		projectID = project.ID
	}

	events := make([]Event, 0, len(emails)+len(calls)+2)
	for _, email := range emails {
		if !belongs(email.ProjectID, email.ProjectName, projectID, projectName) {
			continue
		}
		events = append(events, b.fromEmail(email))
	}
	for _, call := range calls {
		if !belongs(call.ProjectID, call.ProjectName, projectID, projectName) {
			continue
		}
		events = append(events, b.fromCall(call))
	}

	if project != nil {
		events = append(events, Event{
			ID:           fmt.Sprintf("milestone-start-%s", project.ID),
			Type:         EventMilestone,
			Timestamp:    project.StartDate,
			Title:        "Project Start",
			Description:  fmt.Sprintf("%s project officially began", projectName),
			Participants: []string{project.ProjectManager},
			Phase:        PhaseInitiation,
		})
		if project.Status == model.ProjectCompleted && project.EndDate != nil {
			events = append(events, Event{
				ID:           fmt.Sprintf("milestone-end-%s", project.ID),
				Type:         EventMilestone,
				Timestamp:    *project.EndDate,
				Title:        "Project Completion",
				Description:  fmt.Sprintf("%s project successfully completed", projectName),
				Participants: []string{project.ProjectManager},
				Phase:        PhaseClosure,
			})
		}
	}

	sortDescending(events)
	util.LogDebug("timeline built",
		util.F("project", projectName),
		util.F("events", len(events)))
	return events
}

func belongs(recordID, recordName, projectID, projectName string) bool {
	if recordID != "" && projectID != "" {
		return recordID == projectID
	}
	return recordName != "" && recordName == projectName
}

func (b *Builder) fromEmail(email model.Email) Event {
	return Event{
		ID:             fmt.Sprintf("email-%s", email.ID),
		Type:           EventEmail,
		Timestamp:      email.ReceivedAt,
		Title:          email.Subject,
		Description:    email.Snippet,
		Participants:   []string{email.Sender},
		Classification: email.Classification,
		Priority:       email.Priority,
		Status:         email.Status,
		Attachments:    email.Attachments,
		Phase:          b.Phase(email.ReceivedAt),
	}
}

func (b *Builder) fromCall(call model.Call) Event {
	return Event{
		ID:           fmt.Sprintf("call-%s", call.ID),
		Type:         EventCall,
		Timestamp:    call.Timestamp,
		Title:        fmt.Sprintf("Call with %s", call.Caller),
		Description:  call.Summary,
		Participants: []string{call.Caller},
		Priority:     call.Urgency,
		Attachments:  []string{},
		Phase:        b.Phase(call.Timestamp),
	}
}

// Phase labels a timestamp by its age relative to the builder's clock.
func (b *Builder) Phase(ts time.Time) string {
	age := util.DaysBetween(ts, b.clock.Now())
	switch {
	case age < constants.CurrentPhaseDays:
		return PhaseCurrent
	case age < constants.PreviousQuarterPhaseDays:
		return PhasePreviousQuarter
	case age < constants.MidProjectPhaseDays:
		return PhaseMidProject
	default:
		return PhaseEarlyProject
	}
}

// FilterByType keeps events of one type; "all" or empty keeps everything.
// The result is always newest first.
func FilterByType(events []Event, eventType string) []Event {
	filtered := make([]Event, 0, len(events))
	for _, e := range events {
		if eventType == "" || eventType == TypeAll || string(e.Type) == eventType {
			filtered = append(filtered, e)
		}
	}
	sortDescending(filtered)
	return filtered
}

// GroupByDay buckets newest-first events by calendar day in the builder's
// location. Groups come out newest day first.
func (b *Builder) GroupByDay(events []Event) []DayGroup {
	var groups []DayGroup
	index := make(map[string]int)
	for _, e := range events {
		day := e.Timestamp.In(b.location).Format(dayLayout)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Date: day})
		}
		groups[i].Events = append(groups[i].Events, e)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Date > groups[j].Date
	})
	for i := range groups {
		sortDescending(groups[i].Events)
	}
	return groups
}

// Count tallies events by type.
func Count(events []Event) Counts {
	var c Counts
	for _, e := range events {
		switch e.Type {
		case EventEmail:
			c.Emails++
		case EventCall:
			c.Calls++
		case EventMilestone:
			c.Milestones++
		}
		c.Total++
	}
	return c
}

func sortDescending(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].ID < events[j].ID
		}
		return events[i].Timestamp.After(events[j].Timestamp)
	})
}
