package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/core/threshold"
	"github.com/penwyp/go-jobflow/internal/core/timeline"
	"github.com/penwyp/go-jobflow/internal/util"
)

const timeLayout = "2006-01-02 15:04"

// Renderer writes the detail views to one output.
type Renderer struct {
	w      io.Writer
	styles *Styles
	tp     *util.TimeProvider
}

// NewRenderer creates a renderer; timestamps are shown in tp's timezone.
func NewRenderer(w io.Writer, tp *util.TimeProvider) *Renderer {
	return &Renderer{w: w, styles: NewStyles(w), tp: tp}
}

// Styles exposes the badge styles bound to the renderer's output.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

func (r *Renderer) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

// Email prints one email with its triage explanation.
func (r *Renderer) Email(email model.Email, steps []threshold.ReasoningStep) {
	s := r.styles
	r.printf("%s\n", s.Title.Render(email.Subject))
	r.printf("From:     %s\n", email.Sender)
	r.printf("Received: %s\n", r.tp.Format(email.ReceivedAt, timeLayout))
	r.printf("Class:    %s  %s  %s  %s\n",
		s.Classification(email.Classification), s.Confidence(email.Confidence),
		s.Priority(email.Priority), s.Status(email.Status))
	if email.ProjectName != "" {
		r.printf("Project:  %s\n", email.ProjectName)
	}
	if len(email.Attachments) > 0 {
		r.printf("Attached: %s\n", strings.Join(email.Attachments, ", "))
	}
	r.printf("\n%s\n", email.FullBody)

	if len(steps) == 0 {
		return
	}
	r.printf("\n%s\n", s.Bold.Render("AI reasoning"))
	for i, step := range steps {
		r.printf("%d. %s (%d%%)\n", i+1, step.Title, step.Confidence)
		r.printf("   %s\n", s.Muted.Render(step.Description))
		for _, d := range step.Details {
			r.printf("   • %s\n", d)
		}
	}
}

// Timeline prints events newest first, one block per event.
func (r *Renderer) Timeline(projectName string, events []timeline.Event) {
	r.printf("%s\n", r.styles.Title.Render(projectName+" timeline"))
	if len(events) == 0 {
		r.printf("%s\n", r.styles.Muted.Render("No events"))
		return
	}
	for _, e := range events {
		r.event(e, true)
	}
}

// TimelineGroups prints day groups. Collapsed days show only a count.
func (r *Renderer) TimelineGroups(projectName string, groups []timeline.DayGroup, expansion *timeline.Expansion) {
	r.printf("%s\n", r.styles.Title.Render(projectName+" timeline"))
	if len(groups) == 0 {
		r.printf("%s\n", r.styles.Muted.Render("No events"))
		return
	}
	for _, g := range groups {
		marker := "▸"
		if expansion.IsExpanded(g.Date) {
			marker = "▾"
		}
		noun := "events"
		if len(g.Events) == 1 {
			noun = "event"
		}
		r.printf("%s %s (%d %s)\n", marker, r.styles.Bold.Render(g.Date), len(g.Events), noun)
		if !expansion.IsExpanded(g.Date) {
			continue
		}
		for _, e := range g.Events {
			r.event(e, false)
		}
	}
}

func (r *Renderer) event(e timeline.Event, withDate bool) {
	s := r.styles
	layout := "15:04"
	if withDate {
		layout = timeLayout
	}
	r.printf("  %s  %s  %s", r.tp.Format(e.Timestamp, layout), s.EventType(string(e.Type)), e.Title)
	if e.Phase != "" {
		r.printf("  %s", s.Muted.Render("["+e.Phase+"]"))
	}
	r.printf("\n")
	if e.Description != "" {
		r.printf("      %s\n", e.Description)
	}
	if len(e.Participants) > 0 {
		r.printf("      Participants: %s\n", strings.Join(e.Participants, ", "))
	}
	if e.Priority != "" {
		r.printf("      Priority: %s\n", s.Priority(e.Priority))
	}
	if len(e.Attachments) > 0 {
		r.printf("      Attachments: %s\n", strings.Join(e.Attachments, ", "))
	}
}

// Thresholds prints the routing configuration.
func (r *Renderer) Thresholds(cfg threshold.Config) {
	s := r.styles
	r.printf("%s\n", s.Title.Render("Confidence thresholds"))
	r.printf("  Auto-route:    %d%%\n", cfg.AutoRouteThreshold)
	r.printf("  Human review:  %d%%\n", cfg.HumanReviewThreshold)
	r.printf("  Manual sort:   %d%%\n", cfg.ManualSortThreshold)
	if !cfg.Ordered() {
		r.printf("  %s\n", s.colored(amber, "warning: thresholds are not in descending order"))
	}

	r.printf("\n%s\n", s.Title.Render("Confidence weights"))
	w := cfg.Weights
	r.printf("  Subject analysis:   %d%%\n", w.SubjectAnalysis)
	r.printf("  Sender reputation:  %d%%\n", w.SenderReputation)
	r.printf("  Content analysis:   %d%%\n", w.ContentAnalysis)
	r.printf("  Project matching:   %d%%\n", w.ProjectMatching)
	r.printf("  %s\n", s.Muted.Render(fmt.Sprintf("total %d%%", w.Sum())))

	r.printf("\n%s\n", s.Title.Render("Keywords"))
	r.printf("  Priority: %s\n", strings.Join(cfg.PriorityKeywords, ", "))
	r.printf("  Urgent:   %s\n", strings.Join(cfg.UrgentKeywords, ", "))
	r.printf("  Spam:     %s\n", strings.Join(cfg.SpamKeywords, ", "))
}

// Welcome prints the first-run introduction.
func (r *Renderer) Welcome() {
	s := r.styles
	r.printf("%s\n\n", s.Title.Render("Welcome to JobFlow AI"))
	r.printf("AI workflow automation for construction teams:\n")
	for _, line := range []string{
		"emails     classify and route inbound email by confidence",
		"calls      review transcribed calls and action items",
		"projects   browse project binders and their timelines",
		"timeline   follow one project's communication history",
		"thresholds tune routing thresholds, keywords and weights",
		"logs       inspect system logs and integration health",
	} {
		r.printf("  • %s\n", line)
	}
	r.printf("\n%s\n", s.Muted.Render("Run go-jobflow --help for every command."))
}
