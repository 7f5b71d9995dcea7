package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/penwyp/go-jobflow/internal/core/threshold"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/spf13/cobra"
)

var (
	thresholdAutoRoute   int
	thresholdHumanReview int
	thresholdManualSort  int
	thresholdWeight      string
	thresholdAddKeyword  string
	thresholdRemove      string
	thresholdReset       bool
)

var thresholdsCmd = &cobra.Command{
	Use:   "thresholds",
	Short: "Show or edit AI routing thresholds",
	Long: `Shows the confidence thresholds, keyword lists and signal weights used for
routing. Edits apply to this invocation only and are printed back:

  go-jobflow thresholds --auto-route 85 --weight subjectAnalysis=50
  go-jobflow thresholds --add-keyword priority:crane --remove-keyword spam:deal

Thresholds are clamped to 0-100. Changing a weight rescales all four so
they total about 100.`,
	Args: cobra.NoArgs,
	RunE: runThresholds,
}

func init() {
	rootCmd.AddCommand(thresholdsCmd)

	thresholdsCmd.Flags().IntVar(&thresholdAutoRoute, "auto-route", 0,
		"Auto-route threshold (0-100)")
	thresholdsCmd.Flags().IntVar(&thresholdHumanReview, "human-review", 0,
		"Human review threshold (0-100)")
	thresholdsCmd.Flags().IntVar(&thresholdManualSort, "manual-sort", 0,
		"Manual sort threshold (0-100)")
	thresholdsCmd.Flags().StringVar(&thresholdWeight, "weight", "",
		"Comma-separated NAME=VALUE weights (subjectAnalysis, senderReputation, contentAnalysis, projectMatching)")
	thresholdsCmd.Flags().StringVar(&thresholdAddKeyword, "add-keyword", "",
		"Comma-separated KIND:WORD keywords to add (priority, urgent, spam)")
	thresholdsCmd.Flags().StringVar(&thresholdRemove, "remove-keyword", "",
		"Comma-separated KIND:WORD keywords to remove")
	thresholdsCmd.Flags().BoolVar(&thresholdReset, "reset", false,
		"Start from the factory defaults instead of the config file")
}

func runThresholds(cmd *cobra.Command, args []string) error {
	cfg := app.thresholds()
	if thresholdReset {
		cfg.ResetToDefaults()
	}

	flags := cmd.Flags()
	for _, t := range []struct {
		flag, name string
		value      int
	}{
		{"auto-route", threshold.AutoRoute, thresholdAutoRoute},
		{"human-review", threshold.HumanReview, thresholdHumanReview},
		{"manual-sort", threshold.ManualSort, thresholdManualSort},
	} {
		if !flags.Changed(t.flag) {
			continue
		}
		if err := cfg.SetThreshold(t.name, t.value); err != nil {
			return err
		}
	}

	for _, pair := range splitList(thresholdWeight) {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid weight %q: want NAME=VALUE", pair)
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid weight %q: %w", pair, err)
		}
		if err := cfg.SetWeight(strings.TrimSpace(name), value); err != nil {
			return err
		}
	}

	for _, pair := range splitList(thresholdAddKeyword) {
		kind, word, err := keywordPair(pair)
		if err != nil {
			return err
		}
		if err := cfg.AddKeyword(kind, word); err != nil {
			return err
		}
	}

	var missing []string
	for _, pair := range splitList(thresholdRemove) {
		kind, word, err := keywordPair(pair)
		if err != nil {
			return err
		}
		removed, err := cfg.RemoveKeyword(kind, word)
		if err != nil {
			return err
		}
		if !removed {
			missing = append(missing, pair)
		}
	}

	if app.isJSON() {
		return formatter.WriteJSON(app.out, struct {
			threshold.Config
			Ordered bool `json:"ordered"`
		}{cfg, cfg.Ordered()})
	}
	app.renderer().Thresholds(cfg)
	for _, pair := range missing {
		fmt.Fprintf(app.out, "\nkeyword %s not found, nothing removed\n", pair)
	}
	return nil
}

func keywordPair(pair string) (kind, word string, err error) {
	kind, word, ok := strings.Cut(pair, ":")
	if !ok {
		return "", "", fmt.Errorf("invalid keyword %q: want KIND:WORD", pair)
	}
	return strings.TrimSpace(kind), word, nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
