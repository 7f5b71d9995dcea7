package commands

import (
	"fmt"
	"time"

	"github.com/penwyp/go-jobflow/internal/config"
	"github.com/penwyp/go-jobflow/internal/data/store"
	"github.com/penwyp/go-jobflow/internal/presentation/layout"
	"github.com/penwyp/go-jobflow/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Configuration
	configFile string

	// Data source
	dataDir string
	nowFlag string

	// Output related
	outputFormat string
	timezone     string

	// Settings
	settingsDB string
	noWelcome  bool

	// Logging related
	debug bool

	rootCmd = &cobra.Command{
		Use:   "go-jobflow [command]",
		Short: "AI workflow dashboard for construction teams",
		Long: `go-jobflow is a terminal dashboard for the JobFlow AI workflow automation
demo: triaged email, transcribed calls, project binders and their timelines,
routing thresholds, Slack alerts and system health.

Records come from the built-in fixture set, or from a directory of JSON
files given with --data.

Examples:
  go-jobflow                                          # Dashboard overview
  go-jobflow emails --confidence high --date-range week
  go-jobflow emails show email-003                    # Email with AI reasoning
  go-jobflow timeline "Riverside Medical Center" --group
  go-jobflow thresholds --weight subjectAnalysis=50
  go-jobflow export --format csv --range quarter -o json`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runOverview,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default "+config.DefaultConfigFile+")")

	// Data source
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "",
		"Directory with fixture JSON files (default: built-in fixtures)")
	rootCmd.PersistentFlags().StringVar(&nowFlag, "now", "",
		"Pin the current time (RFC3339 or YYYY-MM-DD) for date buckets")

	// Output configuration
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., America/Chicago, UTC)")

	// Settings
	rootCmd.PersistentFlags().StringVar(&settingsDB, "settings-db", "",
		"Settings database path (default "+config.DefaultSettingsDB+")")
	rootCmd.PersistentFlags().BoolVar(&noWelcome, "no-welcome", false,
		"Never show the first-run welcome screen")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
}

// setup loads configuration, logging, the clock and the record store
// before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := cfg.LogLevel
	if debug {
		logLevel = "debug"
	}
	if err := util.InitLogger(util.LoggerOptions{
		Level:   logLevel,
		File:    config.ExpandPath(cfg.LogFile),
		Format:  util.LogFormat(cfg.LogFormat),
		Console: debug,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return err
	}

	tp := util.GetTimeProvider()
	var clock util.Clock = tp
	if nowFlag != "" {
		now, err := parseNow(nowFlag)
		if err != nil {
			return err
		}
		clock = util.FixedClock(now)
	}

	dir := config.ExpandPath(cfg.DataDir)
	st, err := store.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	sizer := layout.NewSizer()
	app = &appContext{
		cfg:      cfg,
		dataDir:  dir,
		store:    st,
		tp:       tp,
		clock:    clock,
		out:      cmd.OutOrStdout(),
		maxWidth: sizer.MaxWidth(),
	}

	if showsWelcome(cmd) {
		app.maybeWelcome(cmd.Context())
	}
	return nil
}

// applyFlags lets explicitly set flags win over the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("output") {
		cfg.Output = outputFormat
	}
	if flags.Changed("timezone") {
		cfg.Timezone = timezone
	}
	if flags.Changed("settings-db") {
		cfg.SettingsDB = settingsDB
	}
}

func showsWelcome(cmd *cobra.Command) bool {
	if noWelcome || app.cfg.Output != "table" {
		return false
	}
	return cmd != welcomeCmd && cmd != versionCmd
}

func parseNow(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, util.GetTimeProvider().Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now %q: want RFC3339 or YYYY-MM-DD", value)
	}
	return t, nil
}

func Execute() error {
	defer closeApp()
	return rootCmd.Execute()
}
