package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantpanel/panel/internal/chart"
)

var (
	chartColumn  string
	chartWidth   int
	chartMaxBars int
)

var chartCmd = &cobra.Command{
	Use:   "chart <file>",
	Short: "ASCII bar chart of one column",
	Long: `Render a horizontal bar chart of a single column to the terminal.
Missing values are skipped, not drawn as zeros. Negative values extend left
from a zero baseline.`,
	Example: `  panel chart prices.csv --column 000001
  panel factor momentum prices.csv --window 3 | panel chart - --column 000001 --max-bars 30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if chartColumn == "" {
			return fmt.Errorf("--column is required")
		}
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		t, err := loadTable(args[0], deps.Config.TimeColumn)
		if err != nil {
			return err
		}
		return chart.Bar(cmd.OutOrStdout(), t, chartColumn, chart.BarOptions{
			Width:   chartWidth,
			MaxBars: chartMaxBars,
		})
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVar(&chartColumn, "column", "", "column to chart (required)")
	chartCmd.Flags().IntVar(&chartWidth, "width", 0, "chart width in characters (default: $COLUMNS or 80)")
	chartCmd.Flags().IntVar(&chartMaxBars, "max-bars", 0, "show at most the last N rows (0 = all)")
}
