package commands

import (
	"fmt"

	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var (
	logsLevel   string
	logsService string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show system logs and performance metrics",
	Args:  cobra.NoArgs,
	RunE:  runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsLevel, "level", "",
		"Log level (SUCCESS, INFO, WARN, ERROR)")
	logsCmd.Flags().StringVar(&logsService, "service", "",
		"Only entries from this service")
}

func runLogs(cmd *cobra.Command, args []string) error {
	if logsLevel != "" && !model.IsValidLogLevel(logsLevel) {
		return fmt.Errorf("invalid log level %q", logsLevel)
	}

	var entries []model.LogEntry
	for _, e := range app.store.Logs() {
		if logsLevel != "" && e.Level != logsLevel {
			continue
		}
		if logsService != "" && e.Service != logsService {
			continue
		}
		entries = append(entries, e)
	}
	perf := app.store.Performance()

	if app.isJSON() {
		return formatter.WriteJSON(app.out, struct {
			Logs        []model.LogEntry         `json:"systemLogs"`
			Performance model.PerformanceMetrics `json:"performanceMetrics"`
		}{entries, perf})
	}

	s := app.badges()
	t := &formatter.Table{
		Headers: []string{"Time", "Level", "Service", "Message", "Duration"},
		Align: []formatter.Align{formatter.AlignLeft, formatter.AlignLeft, formatter.AlignLeft,
			formatter.AlignLeft, formatter.AlignRight},
	}
	for _, e := range entries {
		t.AddRow(app.formatTime(e.Timestamp), s.LogLevel(e.Level), e.Service, e.Message, e.Duration)
	}
	if err := app.render(t, nil); err != nil {
		return err
	}
	if app.cfg.Output != "table" {
		return nil
	}

	health := formatter.Section{Title: "Performance"}
	health.Add("Uptime", perf.SystemUptime)
	health.Add("Avg response", perf.AverageResponseTime)
	health.Add("Memory", perf.MemoryUsage)
	health.Addf("Connections", "%d", perf.ActiveConnections)
	queued := fmt.Sprintf("%d", perf.QueuedTasks)
	if perf.QueueBacklogged() {
		queued += " (backlogged)"
	}
	health.Add("Queued tasks", queued)

	fmt.Fprintln(app.out)
	return formatter.WriteSections(app.out, health)
}
