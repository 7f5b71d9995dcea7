package commands

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/core/timeline"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/penwyp/go-jobflow/internal/util"
	"github.com/spf13/cobra"
)

var (
	timelineType      string
	timelineGroup     bool
	timelineExpand    string
	timelineExpandAll bool
)

var timelineCmd = &cobra.Command{
	Use:   "timeline PROJECT",
	Short: "Show a project's communication timeline",
	Long: `Merges a project's emails, calls and milestones into one newest-first
timeline. PROJECT is a project ID or name; a name without a project record
still shows its emails and calls, without milestones.

With --group, events are bucketed by calendar day in the configured
timezone. Days are collapsed unless named with --expand or --expand-all.`,
	Args: cobra.ExactArgs(1),
	RunE: runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)

	timelineCmd.Flags().StringVarP(&timelineType, "type", "t", timeline.TypeAll,
		"Event type ("+strings.Join(timeline.ValidTypes, ", ")+")")
	timelineCmd.Flags().BoolVarP(&timelineGroup, "group", "g", false,
		"Group events by day")
	timelineCmd.Flags().StringVar(&timelineExpand, "expand", "",
		"Comma-separated days (YYYY-MM-DD) to expand when grouping")
	timelineCmd.Flags().BoolVar(&timelineExpandAll, "expand-all", false,
		"Expand every day when grouping")
}

type timelineView struct {
	Project  string              `json:"project"`
	Counts   timeline.Counts     `json:"counts"`
	Events   []timeline.Event    `json:"events,omitempty"`
	Days     []timeline.DayGroup `json:"days,omitempty"`
	Expanded []string            `json:"expanded,omitempty"`
}

func runTimeline(cmd *cobra.Command, args []string) error {
	if !timeline.IsValidType(timelineType) {
		return fmt.Errorf("invalid --type %q (want %s)", timelineType, strings.Join(timeline.ValidTypes, ", "))
	}

	name := args[0]
	var project *model.Project
	if p, ok := app.store.FindProject(name); ok {
		project = &p
		name = p.Name
	} else {
		util.LogDebug("timeline without project record", util.F("project", name))
	}

	builder := timeline.NewBuilder(app.clock, app.tp.Location())
	events := builder.Build(name, app.store.Emails(), app.store.Calls(), project)
	events = timeline.FilterByType(events, timelineType)
	counts := timeline.Count(events)

	if !timelineGroup {
		if app.isJSON() {
			return formatter.WriteJSON(app.out, timelineView{Project: name, Counts: counts, Events: events})
		}
		if app.cfg.Output == "csv" {
			return app.render(eventTable(events), nil)
		}
		app.renderer().Timeline(name, events)
		app.note("\n%s", countsLine(counts))
		return nil
	}

	groups := builder.GroupByDay(events)
	var expansion timeline.Expansion
	if timelineExpandAll {
		expansion.ExpandAll(groups)
	}
	for _, day := range strings.Split(timelineExpand, ",") {
		if day = strings.TrimSpace(day); day != "" && !expansion.IsExpanded(day) {
			expansion.Toggle(day)
		}
	}

	if app.isJSON() {
		return formatter.WriteJSON(app.out, timelineView{
			Project:  name,
			Counts:   counts,
			Days:     groups,
			Expanded: expansion.Expanded(),
		})
	}
	if app.cfg.Output == "csv" {
		return app.render(eventTable(events), nil)
	}
	app.renderer().TimelineGroups(name, groups, &expansion)
	app.note("\n%s", countsLine(counts))
	return nil
}

func eventTable(events []timeline.Event) *formatter.Table {
	t := &formatter.Table{
		Headers: []string{"ID", "Type", "Time", "Title", "Description", "Participants", "Priority", "Phase"},
	}
	for _, e := range events {
		t.AddRow(e.ID, string(e.Type), app.formatTime(e.Timestamp), e.Title, e.Description,
			strings.Join(e.Participants, "; "), e.Priority, e.Phase)
	}
	return t
}

func countsLine(c timeline.Counts) string {
	return fmt.Sprintf("%d %s, %d %s, %d %s",
		c.Emails, plural(c.Emails, "email", "emails"),
		c.Calls, plural(c.Calls, "call", "calls"),
		c.Milestones, plural(c.Milestones, "milestone", "milestones"))
}
