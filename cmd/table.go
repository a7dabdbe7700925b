package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantpanel/panel/internal/util"
	"github.com/quantpanel/panel/internal/wide"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Inspect and convert wide CSV files",
	Long: `Commands for loading, inspecting, and re-writing wide-table CSV files.

A wide table is one date column plus one value column per instrument:

  date,000001,000002
  2024-01-01,10.0,20.0
  2024-01-02,10.2,20.5

Use '-' as the file argument to read from stdin.`,
}

// ─── table show ───────────────────────────────────────────────────────────────

var tableShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Load a wide CSV and render it",
	Example: `  panel table show prices.csv
  panel table show prices.csv --format json
  cat prices.csv | panel table show -`,
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
		return writeTable(t, deps.Config.Format)
	},
}

// ─── table info ───────────────────────────────────────────────────────────────

var tableInfoCmd = &cobra.Command{
	Use:     "info <file>",
	Short:   "Show shape, date range, and missing-value counts",
	Example: `  panel table info prices.csv`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		t, err := loadTable(args[0], deps.Config.TimeColumn)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		rows := [][]string{
			{"time_column", t.TimeColumn()},
			{"rows", fmt.Sprintf("%d", t.Len())},
			{"columns", fmt.Sprintf("%d", len(t.Columns()))},
		}
		if index := t.Index(); len(index) > 0 {
			rows = append(rows,
				[]string{"start", util.FormatDate(index[0])},
				[]string{"end", util.FormatDate(index[len(index)-1])},
			)
		}
		printKVTable(out, rows)

		if t.Len() > 0 && len(t.Columns()) > 0 {
			fmt.Fprintln(out)
			printSimpleTable(out, []string{"COLUMN", "MISSING"}, func(add func(...string)) {
				for _, name := range t.Columns() {
					vals, _ := t.Values(name)
					missing := 0
					for _, v := range vals {
						if wide.IsMissing(v) {
							missing++
						}
					}
					add(name, fmt.Sprintf("%d", missing))
				}
			})
		}
		return nil
	},
}

// ─── table convert ────────────────────────────────────────────────────────────

var tableConvertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Re-write a wide CSV canonically (validates on the way through)",
	Example: `  panel table convert raw.csv clean.csv
  cat raw.csv | panel table convert - clean.csv`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		t, err := loadTable(args[0], deps.Config.TimeColumn)
		if err != nil {
			return err
		}
		if err := t.Save(args[1]); err != nil {
			return fmt.Errorf("saving %s: %w", args[1], err)
		}
		if !deps.Config.Quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s  (%d rows, %d columns)\n",
				args[1], t.Len(), len(t.Columns()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.AddCommand(tableShowCmd)
	tableCmd.AddCommand(tableInfoCmd)
	tableCmd.AddCommand(tableConvertCmd)
}
