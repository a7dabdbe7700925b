package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quantpanel/panel/internal/analyze"
	"github.com/quantpanel/panel/internal/render"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze the columns of a wide table",
}

// ─── analyze summary ─────────────────────────────────────────────────────────

var analyzeSummaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Per-column descriptive statistics: count, missing, mean, std, min, median, max",
	Example: `  panel analyze summary prices.csv
  panel factor pct-change prices.csv | panel analyze summary -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		t, err := loadTable(args[0], deps.Config.TimeColumn)
		if err != nil {
			return err
		}
		sums := analyze.Summarize(t)
		return render.Summaries(cmd.OutOrStdout(), sums, resolveFormat(deps.Config.Format))
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeSummaryCmd)
}
