package commands

import (
	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var integrationsCmd = &cobra.Command{
	Use:   "integrations",
	Short: "Show external service connections",
	Args:  cobra.NoArgs,
	RunE:  runIntegrations,
}

func init() {
	rootCmd.AddCommand(integrationsCmd)
}

func runIntegrations(cmd *cobra.Command, args []string) error {
	integrations := model.DefaultIntegrations()

	t := &formatter.Table{
		Headers: []string{"ID", "Service", "Purpose", "Status", "Last sync"},
	}
	connected := 0
	for _, i := range integrations {
		if i.Connected {
			connected++
		}
		t.AddRow(i.ID, i.Name, i.Description, i.Status(), i.LastSync)
	}
	if err := app.render(t, integrations); err != nil {
		return err
	}
	app.note("%d of %d services connected", connected, len(integrations))
	return nil
}
