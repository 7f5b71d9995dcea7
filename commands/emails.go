package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-jobflow/internal/core/filter"
	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/core/threshold"
	"github.com/penwyp/go-jobflow/internal/data/store"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/penwyp/go-jobflow/internal/presentation/interaction"
	"github.com/penwyp/go-jobflow/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Filter panel
	emailSearch         string
	emailClassification string
	emailConfidence     string
	emailPriority       string
	emailStatus         string
	emailProject        string
	emailDateRange      string
	emailSender         string

	// Listing
	emailSort  string
	emailLimit int
	emailWatch bool
)

// emailFilterFlags binds each filter panel field to its flag.
var emailFilterFlags = []struct {
	name  string
	value *string
	usage string
}{
	{"search", &emailSearch, "Case-insensitive text in subject, sender or snippet"},
	{"classification", &emailClassification, "Classification (Bid, Enquiry, Spam)"},
	{"confidence", &emailConfidence, "Confidence bucket (high, medium, low)"},
	{"priority", &emailPriority, "Priority (high, medium, low)"},
	{"status", &emailStatus, "Status (auto_routed, pending_review, urgent, processing)"},
	{"project", &emailProject, "Exact project name"},
	{"date-range", &emailDateRange, "Received (today, yesterday, week, month, quarter)"},
	{"sender", &emailSender, "Sender type (government, commercial, consulting, suppliers)"},
}

var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "List triaged emails",
	Long: `Lists triaged emails through the filter panel. Every filter is optional and
filters combine with AND; "all" leaves a filter unset.

Date ranges are measured from now (see --now): today is at most one day
old, yesterday between one and two days, and week, month and quarter at
most 7, 30 and 90 days.`,
	Args: cobra.NoArgs,
	RunE: runEmails,
}

var emailShowCmd = &cobra.Command{
	Use:   "show EMAIL_ID",
	Short: "Show one email with its AI reasoning",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmailShow,
}

func init() {
	rootCmd.AddCommand(emailsCmd)
	emailsCmd.AddCommand(emailShowCmd)

	for _, f := range emailFilterFlags {
		emailsCmd.Flags().StringVar(f.value, f.name, "", f.usage)
	}

	emailsCmd.Flags().StringVar(&emailSort, "sort", "received",
		"Sort by received, confidence, priority or sender; append :asc or :desc")
	emailsCmd.Flags().IntVar(&emailLimit, "limit", 0,
		"Limit result count (0 = unlimited)")
	emailsCmd.Flags().BoolVarP(&emailWatch, "watch", "w", false,
		"Re-render when files in --data change")
}

// filterState translates the filter flags into a filter panel state.
func filterState() (filter.State, error) {
	var state filter.State
	for _, f := range emailFilterFlags {
		field, err := filter.ParseField(f.name)
		if err != nil {
			return state, err
		}
		if err := filter.ValidateValue(field, *f.value); err != nil {
			return state, fmt.Errorf("invalid --%s: %w", f.name, err)
		}
		state.Set(field, *f.value)
	}
	return state, nil
}

type emailList struct {
	Filters filter.State  `json:"filters"`
	Total   int           `json:"total"`
	Matched int           `json:"matched"`
	Emails  []model.Email `json:"emails"`
}

func runEmails(cmd *cobra.Command, args []string) error {
	state, err := filterState()
	if err != nil {
		return err
	}
	sorter, err := interaction.ParseSort(emailSort)
	if err != nil {
		return err
	}

	if !emailWatch {
		return renderEmails(app.store, state, sorter)
	}
	if app.dataDir == "" {
		return fmt.Errorf("--watch needs a --data directory; the built-in fixtures never change")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchEmails(ctx, state, sorter)
}

func watchEmails(ctx context.Context, state filter.State, sorter *interaction.EmailSorter) error {
	watcher, err := store.NewWatcher(app.dataDir)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := renderEmails(app.store, state, sorter); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-watcher.Reloads():
			st, err := store.Load(app.dataDir)
			if err != nil {
				util.LogWarn("reload failed, keeping previous records", util.F("error", err.Error()))
				continue
			}
			app.store = st
			fmt.Fprintln(app.out)
			if err := renderEmails(st, state, sorter); err != nil {
				return err
			}
		}
	}
}

func renderEmails(st *store.Store, state filter.State, sorter *interaction.EmailSorter) error {
	all := st.Emails()
	matched := filter.NewEngine(app.clock).Apply(all, state)
	sorter.Sort(matched)
	if emailLimit > 0 && len(matched) > emailLimit {
		matched = matched[:emailLimit]
	}

	if app.isJSON() {
		return formatter.WriteJSON(app.out, emailList{
			Filters: state,
			Total:   len(all),
			Matched: len(matched),
			Emails:  matched,
		})
	}

	s := app.badges()
	t := &formatter.Table{
		Headers: []string{"ID", "Received", "From", "Subject", "Class", "Conf", "Priority", "Status", "Project"},
		Align: []formatter.Align{formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft,
			formatter.AlignLeft, formatter.AlignRight},
	}
	for _, e := range matched {
		t.AddRow(e.ID, app.formatTime(e.ReceivedAt), e.Sender, e.Subject,
			s.Classification(e.Classification), s.Confidence(e.Confidence),
			s.Priority(e.Priority), s.Status(e.Status), e.ProjectName)
	}
	if err := app.render(t, nil); err != nil {
		return err
	}

	if state.IsEmpty() {
		app.note("Showing %d of %d emails", len(matched), len(all))
	} else {
		active := state.ActiveCount()
		app.note("Showing %d of %d emails (%d %s active)", len(matched), len(all), active, plural(active, "filter", "filters"))
	}
	return nil
}

type emailDetail struct {
	Email        model.Email               `json:"email"`
	Route        threshold.Route           `json:"route"`
	TargetFolder string                    `json:"targetFolder"`
	Reasoning    []threshold.ReasoningStep `json:"reasoning"`
}

func runEmailShow(cmd *cobra.Command, args []string) error {
	email, ok := app.store.EmailByID(args[0])
	if !ok {
		return fmt.Errorf("email %q not found", args[0])
	}

	cfg := app.thresholds()
	steps := cfg.Explain(email)
	if app.isJSON() {
		return formatter.WriteJSON(app.out, emailDetail{
			Email:        email,
			Route:        cfg.Route(email.Confidence),
			TargetFolder: threshold.TargetFolder(email),
			Reasoning:    steps,
		})
	}
	app.renderer().Email(email, steps)
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
