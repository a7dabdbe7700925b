// Package cmd implements the panel CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quantpanel/panel/internal/app"
	"github.com/quantpanel/panel/internal/config"
)

// globalFlags holds the parsed values of all persistent (global) flags.
// Commands read from this struct via the deps they receive.
var globalFlags struct {
	Format     string
	Out        string
	TimeColumn string
	DBPath     string
	Quiet      bool
	Verbose    bool
	Debug      bool
}

// rootCmd is the base command. Running `panel` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "panel",
	Short: "panel — wide-table factor research for quantitative finance",
	Long: `panel is a command-line tool for working with wide tables: a date index
plus one price column per instrument, stored as CSV.

It computes the two classic derived factors — period-over-period returns
(pct-change) and rolling momentum — while preserving row count and column
alignment, and keeps named panels in a local database for later runs.

Quick start:
  panel table show prices.csv               # inspect a wide CSV
  panel factor pct-change prices.csv        # single-period returns
  panel factor momentum prices.csv --window 3
  panel store put close-2024 prices.csv     # keep it for later`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if globalFlags.Debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE.
func buildDeps() (*app.Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides
	cfg.Quiet = globalFlags.Quiet
	cfg.Verbose = globalFlags.Verbose
	cfg.Debug = globalFlags.Debug

	if globalFlags.Format != "" {
		cfg.Format = globalFlags.Format
	}
	if globalFlags.TimeColumn != "" {
		cfg.TimeColumn = globalFlags.TimeColumn
	}
	if globalFlags.DBPath != "" {
		cfg.DBPath = globalFlags.DBPath
	}

	return app.New(cfg), nil
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: table|json|csv|tsv|md (default: table)")
	pf.StringVar(&globalFlags.Out, "out", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.TimeColumn, "time-column", "",
		"name of the date column in CSV files (default: date)")
	pf.StringVar(&globalFlags.DBPath, "db", "",
		"path to the local panel database (overrides env PANEL_DB_PATH and config.json)")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress all non-error output")
	pf.BoolVar(&globalFlags.Verbose, "verbose", false,
		"show extra detail after output")
	pf.BoolVar(&globalFlags.Debug, "debug", false,
		"log store and file operations at debug level")
}
