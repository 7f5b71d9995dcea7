package commands

import (
	"fmt"

	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/penwyp/go-jobflow/internal/util"
	"github.com/spf13/cobra"
)

var projectStatus string

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List project binders",
	Args:  cobra.NoArgs,
	RunE:  runProjects,
}

var projectShowCmd = &cobra.Command{
	Use:   "show PROJECT",
	Short: "Show one project by ID or name",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectShow,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectShowCmd)

	projectsCmd.Flags().StringVar(&projectStatus, "status", "",
		"Status (planning, bidding, in_progress, completed)")
}

type projectRow struct {
	model.Project
	Emails int `json:"emailCount"`
	Calls  int `json:"callCount"`
}

func runProjects(cmd *cobra.Command, args []string) error {
	var rows []projectRow
	var pipeline int64
	for _, p := range app.store.Projects() {
		if projectStatus != "" && p.Status != projectStatus {
			continue
		}
		comms := app.store.Communications(p.ID)
		rows = append(rows, projectRow{Project: p, Emails: len(comms.Emails), Calls: len(comms.Calls)})

		if v, err := util.ParseCurrency(p.Value); err == nil {
			pipeline += v
		} else {
			util.LogDebug("unparseable project value", util.F("project", p.ID), util.F("value", p.Value))
		}
	}

	s := app.badges()
	t := &formatter.Table{
		Headers: []string{"ID", "Name", "Client", "Value", "Status", "Manager", "Emails", "Calls", "Last activity"},
		Align: []formatter.Align{formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft, formatter.AlignRight,
			formatter.AlignLeft, formatter.AlignLeft, formatter.AlignRight, formatter.AlignRight},
	}
	for _, r := range rows {
		t.AddRow(r.ID, r.Name, r.Client, r.Value, s.Status(r.Status), r.ProjectManager,
			fmt.Sprintf("%d", r.Emails), fmt.Sprintf("%d", r.Calls), util.TimeAgo(r.LastActivity, app.clock.Now()))
	}
	if app.cfg.Output == "table" {
		t.Footer = []string{"", "Total", "", util.FormatCurrency(pipeline), "", "", "", "", ""}
	}
	return app.render(t, rows)
}

func runProjectShow(cmd *cobra.Command, args []string) error {
	p, ok := app.store.FindProject(args[0])
	if !ok {
		return fmt.Errorf("project %q not found", args[0])
	}
	comms := app.store.Communications(p.ID)
	if app.isJSON() {
		return formatter.WriteJSON(app.out, struct {
			Project model.Project `json:"project"`
			Emails  []model.Email `json:"emails"`
			Calls   []model.Call  `json:"calls"`
		}{p, comms.Emails, comms.Calls})
	}

	s := app.badges()
	details := formatter.Section{Title: p.Name}
	details.Add("ID", p.ID)
	details.Add("Client", p.Client)
	details.Add("Value", p.Value)
	details.Add("Status", s.Status(p.Status))
	details.Add("Manager", p.ProjectManager)
	details.Add("Started", app.tp.Format(p.StartDate, "2006-01-02"))
	if p.EndDate != nil {
		details.Add("Completed", app.tp.Format(*p.EndDate, "2006-01-02"))
	}
	details.Add("Last activity", util.TimeAgo(p.LastActivity, app.clock.Now()))
	details.Add("Description", p.Description)

	binder := formatter.Section{Title: "Binder"}
	binder.Addf("Emails", "%d", len(comms.Emails))
	binder.Addf("Calls", "%d", len(comms.Calls))
	binder.Addf("Total", "%d", comms.Total())
	for _, e := range comms.Emails {
		binder.Add(e.ID, e.Subject)
	}
	for _, c := range comms.Calls {
		binder.Add(c.ID, c.Summary)
	}
	return formatter.WriteSections(app.out, details, binder)
}
