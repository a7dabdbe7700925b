package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quantpanel/panel/internal/factor"
)

var factorCmd = &cobra.Command{
	Use:   "factor",
	Short: "Compute derived factors from a wide price table",
	Long: `Factor operators load a wide CSV, recompute every value column, and emit a
table with the same dates and columns. Rows before the window requirement
hold missing markers, so output always lines up row-for-row with input.

Pipeline example:
  panel factor pct-change prices.csv | panel factor momentum - --window 3`,
}

// ─── pct-change ───────────────────────────────────────────────────────────────

var factorPctPeriod int

var factorPctCmd = &cobra.Command{
	Use:   "pct-change <file>",
	Short: "Period-over-period return: (v[t]-v[t-N]) / v[t-N]",
	Example: `  panel factor pct-change prices.csv
  panel factor pct-change prices.csv --period 5 --out returns.csv
  cat prices.csv | panel factor pct-change -`,
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
		out, err := factor.PctChange(t, factorPctPeriod)
		if err != nil {
			return err
		}
		return writeTable(out, deps.Config.Format)
	},
}

// ─── momentum ─────────────────────────────────────────────────────────────────

var factorMomWindow int

var factorMomCmd = &cobra.Command{
	Use:   "momentum <file>",
	Short: "Rolling sum of single-period returns over N rows",
	Long: `Momentum is the rolling sum of single-period returns over a trailing
window. The single-period return is undefined at the first row, so the first
row that can carry a value is row number equal to the window size. A window
containing any missing return is itself missing; there are no partial sums.`,
	Example: `  panel factor momentum prices.csv --window 3
  panel factor momentum prices.csv --window 12 --out mom12.csv`,
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
		out, err := factor.Momentum(t, factorMomWindow)
		if err != nil {
			return err
		}
		return writeTable(out, deps.Config.Format)
	},
}

func init() {
	rootCmd.AddCommand(factorCmd)
	factorCmd.AddCommand(factorPctCmd)
	factorCmd.AddCommand(factorMomCmd)

	factorPctCmd.Flags().IntVar(&factorPctPeriod, "period", 1, "lag period (1 = single-period return)")
	factorMomCmd.Flags().IntVar(&factorMomWindow, "window", 3, "window size (number of returns summed)")
}
