package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/penwyp/go-jobflow/internal/core/export"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/penwyp/go-jobflow/internal/util"
	"github.com/spf13/cobra"
)

var (
	exportFormat      string
	exportRange       string
	exportFrom        string
	exportTo          string
	exportProjects    string
	exportEmails      bool
	exportCalls       bool
	exportDocuments   bool
	exportSystemLogs  bool
	exportAIReasoning bool
	exportDelay       time.Duration
	exportDryRun      bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Request a project data export",
	Long: `Validates an export request, shows its estimated size and submits it. The
export service is simulated: the request is logged and acknowledged after
a short processing delay, and no file is written.

  go-jobflow export --format excel --range quarter --projects proj-001,proj-003
  go-jobflow export --range custom --from 2024-10-01 --to 2024-12-31 --dry-run`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	defaults := export.DefaultConfig()
	exportCmd.Flags().StringVar(&exportFormat, "format", defaults.Format,
		"Export format (pdf, excel, csv, json)")
	exportCmd.Flags().StringVar(&exportRange, "range", defaults.DateRange,
		"Date range (week, month, quarter, year, all, custom)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "",
		"Custom range start (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "",
		"Custom range end (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportProjects, "projects", "",
		"Comma-separated project IDs or names (default: all projects)")

	// Content sections
	exportCmd.Flags().BoolVar(&exportEmails, "emails", defaults.IncludeEmails,
		"Include emails")
	exportCmd.Flags().BoolVar(&exportCalls, "calls", defaults.IncludeCalls,
		"Include call transcriptions")
	exportCmd.Flags().BoolVar(&exportDocuments, "documents", defaults.IncludeDocuments,
		"Include documents")
	exportCmd.Flags().BoolVar(&exportSystemLogs, "system-logs", defaults.IncludeSystemLogs,
		"Include system logs")
	exportCmd.Flags().BoolVar(&exportAIReasoning, "ai-reasoning", defaults.IncludeAIReasoning,
		"Include AI reasoning")

	exportCmd.Flags().DurationVar(&exportDelay, "delay", -1,
		"Simulated processing time (default from config)")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false,
		"Validate and estimate without submitting")
}

func exportConfig() (export.Config, error) {
	cfg := export.DefaultConfig()
	cfg.Format = exportFormat
	cfg.DateRange = exportRange
	cfg.IncludeEmails = exportEmails
	cfg.IncludeCalls = exportCalls
	cfg.IncludeDocuments = exportDocuments
	cfg.IncludeSystemLogs = exportSystemLogs
	cfg.IncludeAIReasoning = exportAIReasoning

	for _, ref := range splitList(exportProjects) {
		p, ok := app.store.FindProject(ref)
		if !ok {
			return cfg, fmt.Errorf("project %q not found", ref)
		}
		cfg.ToggleProject(p.ID)
	}
	if len(cfg.SelectedProjects) > 0 {
		cfg.ProjectScope = export.ScopeSpecific
	}

	loc := app.tp.Location()
	for _, d := range []struct {
		value string
		dst   **time.Time
	}{{exportFrom, &cfg.CustomStart}, {exportTo, &cfg.CustomEnd}} {
		if d.value == "" {
			continue
		}
		t, err := time.ParseInLocation("2006-01-02", d.value, loc)
		if err != nil {
			return cfg, fmt.Errorf("invalid date %q: want YYYY-MM-DD", d.value)
		}
		*d.dst = &t
	}
	return cfg, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := exportConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if exportDryRun {
		if app.isJSON() {
			return formatter.WriteJSON(app.out, struct {
				export.Config
				EstimatedSizeMB float64 `json:"estimatedSizeMB"`
			}{cfg, cfg.EstimatedSizeMB()})
		}
		return formatter.WriteSections(app.out, exportSummary(cfg))
	}

	delay := app.cfg.ExportDelay
	if exportDelay >= 0 {
		delay = exportDelay
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter := export.NewLogExporter(delay, app.clock).WithLogger(util.GetLogger().Named("export"))
	if !app.isJSON() {
		fmt.Fprintf(app.out, "Preparing %s export (~%.1f MB)...\n", cfg.Format, cfg.EstimatedSizeMB())
	}
	result, err := exporter.Export(ctx, cfg)
	if err != nil {
		return fmt.Errorf("export %s: %w", cfg.RequestID, err)
	}

	if app.isJSON() {
		return formatter.WriteJSON(app.out, result)
	}
	fmt.Fprintf(app.out, "Export %s completed at %s\n", result.RequestID, app.formatTime(result.CompletedAt))
	return nil
}

func exportSummary(cfg export.Config) formatter.Section {
	s := formatter.Section{Title: "Export " + cfg.RequestID}
	s.Add("Format", cfg.Format)
	if cfg.DateRange == export.RangeCustom {
		s.Addf("Range", "%s to %s", cfg.CustomStart.Format("2006-01-02"), cfg.CustomEnd.Format("2006-01-02"))
	} else {
		s.Add("Range", cfg.DateRange)
	}
	if cfg.ProjectScope == export.ScopeSpecific {
		s.Addf("Projects", "%d selected", len(cfg.SelectedProjects))
	} else {
		s.Add("Projects", "all")
	}
	for _, section := range []struct {
		label string
		on    bool
	}{
		{"Emails", cfg.IncludeEmails},
		{"Calls", cfg.IncludeCalls},
		{"Documents", cfg.IncludeDocuments},
		{"System logs", cfg.IncludeSystemLogs},
		{"AI reasoning", cfg.IncludeAIReasoning},
	} {
		if section.on {
			s.Add(section.label, "yes")
		} else {
			s.Add(section.label, "no")
		}
	}
	s.Addf("Estimated size", "%.1f MB", cfg.EstimatedSizeMB())
	return s
}
