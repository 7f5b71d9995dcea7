package commands

import (
	"fmt"
	"strings"

	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var (
	callUrgency string
	callProject string
	callTag     string
)

var callsCmd = &cobra.Command{
	Use:   "calls",
	Short: "List transcribed calls",
	Args:  cobra.NoArgs,
	RunE:  runCalls,
}

var callShowCmd = &cobra.Command{
	Use:   "show CALL_ID",
	Short: "Show one call with its transcription and action items",
	Args:  cobra.ExactArgs(1),
	RunE:  runCallShow,
}

func init() {
	rootCmd.AddCommand(callsCmd)
	callsCmd.AddCommand(callShowCmd)

	callsCmd.Flags().StringVar(&callUrgency, "urgency", "",
		"Urgency (high, medium, low)")
	callsCmd.Flags().StringVar(&callProject, "project", "",
		"Project name or ID")
	callsCmd.Flags().StringVar(&callTag, "tag", "",
		"Only calls carrying this tag")
}

func runCalls(cmd *cobra.Command, args []string) error {
	projectID := ""
	if callProject != "" {
		p, ok := app.store.FindProject(callProject)
		if !ok {
			return fmt.Errorf("project %q not found", callProject)
		}
		projectID = p.ID
	}

	all := app.store.Calls()
	calls := make([]model.Call, 0, len(all))
	for _, c := range all {
		if callUrgency != "" && c.Urgency != callUrgency {
			continue
		}
		if projectID != "" && c.ProjectID != projectID {
			continue
		}
		if callTag != "" && !c.HasTag(callTag) {
			continue
		}
		calls = append(calls, c)
	}

	s := app.badges()
	t := &formatter.Table{
		Headers: []string{"ID", "Time", "Caller", "Duration", "Urgency", "Project", "Summary", "Actions"},
		Align: []formatter.Align{formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft, formatter.AlignRight,
			formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft, formatter.AlignRight},
	}
	urgent := 0
	for _, c := range calls {
		if c.Urgency == model.PriorityHigh {
			urgent++
		}
		t.AddRow(c.ID, app.formatTime(c.Timestamp), c.Caller, c.Duration, s.Priority(c.Urgency),
			c.ProjectName, c.Summary, fmt.Sprintf("%d", len(c.ActionItems)))
	}
	if err := app.render(t, calls); err != nil {
		return err
	}
	app.note("%d %s, %d urgent", len(calls), plural(len(calls), "call", "calls"), urgent)
	return nil
}

func runCallShow(cmd *cobra.Command, args []string) error {
	call, ok := app.store.CallByID(args[0])
	if !ok {
		return fmt.Errorf("call %q not found", args[0])
	}
	if app.isJSON() {
		return formatter.WriteJSON(app.out, call)
	}

	s := app.badges()
	details := formatter.Section{Title: call.Caller}
	details.Add("Time", app.formatTime(call.Timestamp))
	details.Add("Duration", call.Duration)
	details.Add("Urgency", s.Priority(call.Urgency))
	details.Addf("Confidence", "%d%%", call.Confidence)
	if call.ProjectName != "" {
		details.Add("Project", call.ProjectName)
	}
	if len(call.Tags) > 0 {
		details.Add("Tags", strings.Join(call.Tags, ", "))
	}
	details.Add("Summary", call.Summary)

	actions := formatter.Section{Title: "Action items"}
	for i, item := range call.ActionItems {
		actions.Add(fmt.Sprintf("%d", i+1), item)
	}

	if err := formatter.WriteSections(app.out, details, actions); err != nil {
		return err
	}
	fmt.Fprintf(app.out, "\nTranscription\n%s\n", call.Transcription)
	return nil
}
