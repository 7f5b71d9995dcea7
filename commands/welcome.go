package commands

import (
	"fmt"

	"github.com/penwyp/go-jobflow/internal/data/settings"
	"github.com/spf13/cobra"
)

var welcomeReset bool

var welcomeCmd = &cobra.Command{
	Use:   "welcome",
	Short: "Show the welcome screen",
	Long: `Shows the welcome screen. It is also shown automatically the first time any
command runs against a settings database; --reset makes it appear again.`,
	Args: cobra.NoArgs,
	RunE: runWelcome,
}

func init() {
	rootCmd.AddCommand(welcomeCmd)

	welcomeCmd.Flags().BoolVar(&welcomeReset, "reset", false,
		"Show the welcome screen again on the next run")
}

func runWelcome(cmd *cobra.Command, args []string) error {
	if welcomeReset {
		s, err := app.openSettings()
		if err != nil {
			return err
		}
		if err := s.Set(cmd.Context(), settings.VisitedKey, "false"); err != nil {
			return fmt.Errorf("failed to reset welcome flag: %w", err)
		}
		fmt.Fprintln(app.out, "Welcome screen will show on the next run.")
		return nil
	}
	app.renderer().Welcome()
	return nil
}
