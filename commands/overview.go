package commands

import (
	"github.com/penwyp/go-jobflow/internal/core/filter"
	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the dashboard overview",
	Args:  cobra.NoArgs,
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

// overview is the JSON form of the dashboard header and inbox summary.
type overview struct {
	Metrics          model.WorkflowMetrics `json:"metrics"`
	Emails           int                   `json:"emails"`
	EmailsToday      int                   `json:"emailsToday"`
	ByClassification map[string]int        `json:"byClassification"`
	PendingReview    int                   `json:"pendingReview"`
	Urgent           int                   `json:"urgent"`
	UrgentCalls      int                   `json:"urgentCalls"`
	ActiveProjects   int                   `json:"openProjects"`
	Unresolved       int                   `json:"unresolvedReferences"`
}

func buildOverview() overview {
	emails := app.store.Emails()
	o := overview{
		Metrics:          app.store.Metrics(),
		Emails:           len(emails),
		ByClassification: make(map[string]int),
		Unresolved:       app.store.Unresolved(),
	}

	engine := filter.NewEngine(app.clock)
	o.EmailsToday = len(engine.Apply(emails, filter.State{DateRange: filter.RangeToday}))
	for _, e := range emails {
		o.ByClassification[e.Classification]++
		switch e.Status {
		case model.StatusPendingReview:
			o.PendingReview++
		case model.StatusUrgent:
			o.Urgent++
		}
	}
	for _, c := range app.store.Calls() {
		if c.Urgency == model.PriorityHigh {
			o.UrgentCalls++
		}
	}
	for _, p := range app.store.Projects() {
		if p.Status != model.ProjectCompleted {
			o.ActiveProjects++
		}
	}
	return o
}

func runOverview(cmd *cobra.Command, args []string) error {
	o := buildOverview()
	if app.isJSON() {
		return formatter.WriteJSON(app.out, o)
	}

	m := o.Metrics
	workflow := formatter.Section{Title: "Workflow"}
	workflow.Addf("Emails processed today", "%d", m.EmailProcessing.Today)
	workflow.Addf("Classification accuracy", "%.1f%%", m.EmailProcessing.AccuracyRate)
	workflow.Addf("Auto-routed", "%.0f%%", m.EmailProcessing.AutoRoutedPercentage)
	workflow.Add("Avg processing time", m.EmailProcessing.ProcessingTimeAvg)
	workflow.Addf("Calls transcribed today", "%d", m.CallProcessing.Today)
	workflow.Addf("Transcription accuracy", "%.1f%%", m.CallProcessing.TranscriptionAccuracy)
	workflow.Addf("Slack alerts sent", "%d (%.1f%% delivered)", m.SlackNotifications.Sent, m.SlackNotifications.DeliveryRate)
	workflow.Addf("Active project binders", "%d", m.ProjectBinders.ActiveProjects)

	inbox := formatter.Section{Title: "Inbox"}
	inbox.Addf("Emails", "%d (%d today)", o.Emails, o.EmailsToday)
	for _, c := range model.ValidClassifications {
		inbox.Addf(c, "%d", o.ByClassification[c])
	}
	inbox.Addf("Pending review", "%d", o.PendingReview)
	inbox.Addf("Urgent", "%d", o.Urgent)
	inbox.Addf("Urgent calls", "%d", o.UrgentCalls)
	inbox.Addf("Open projects", "%d", o.ActiveProjects)

	sections := []formatter.Section{workflow, inbox}
	if o.Unresolved > 0 {
		data := formatter.Section{Title: "Data"}
		data.Add("Source", app.store.Source())
		data.Addf("Unresolved project references", "%d", o.Unresolved)
		sections = append(sections, data)
	}
	return formatter.WriteSections(app.out, sections...)
}
