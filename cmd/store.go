package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Keep named panels in the local database",
	Long: `Commands for saving wide tables under a name and reading them back.

The local store is an intentional data store, not a transparent cache —
panels persist until you explicitly delete or clear them.`,
}

// ─── store put ────────────────────────────────────────────────────────────────

var storePutCmd = &cobra.Command{
	Use:   "put <name> <file>",
	Short: "Save a wide CSV under a name",
	Example: `  panel store put close-2024 prices.csv
  panel factor momentum prices.csv --window 3 | panel store put mom3-2024 -`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		t, err := loadTable(args[1], deps.Config.TimeColumn)
		if err != nil {
			return err
		}
		if err := deps.Store.PutPanel(args[0], t); err != nil {
			return fmt.Errorf("saving panel: %w", err)
		}
		if !deps.Config.Quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved panel %q  (%d rows, %d columns)\n",
				args[0], t.Len(), len(t.Columns()))
		}
		return nil
	},
}

// ─── store get ────────────────────────────────────────────────────────────────

var storeGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Read a named panel back out",
	Example: `  panel store get close-2024
  panel store get close-2024 --out prices.csv
  panel store get close-2024 --format csv | panel factor pct-change -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		t, found, err := deps.Store.GetPanel(args[0])
		if err != nil {
			return fmt.Errorf("reading panel: %w", err)
		}
		if !found {
			return fmt.Errorf("no panel named %q (see 'panel store list')", args[0])
		}
		return writeTable(t, deps.Config.Format)
	},
}

// ─── store list ───────────────────────────────────────────────────────────────

var storeListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List panels in the local database",
	Example: `  panel store list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		infos, err := deps.Store.ListPanels()
		if err != nil {
			return fmt.Errorf("reading store: %w", err)
		}

		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No panels in local database.")
			fmt.Fprintln(cmd.OutOrStdout(), "  Use: panel store put <name> <file>")
			return nil
		}

		// Sort by name for deterministic output
		sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })

		printSimpleTable(cmd.OutOrStdout(), []string{"NAME", "ROWS", "COLUMNS", "START", "END", "SAVED"}, func(add func(...string)) {
			for _, p := range infos {
				add(p.Name,
					fmt.Sprintf("%d", p.Rows),
					fmt.Sprintf("%d", p.Columns),
					p.Start, p.End,
					p.SavedAt.Format("2006-01-02 15:04"))
			}
		})
		return nil
	},
}

// ─── store delete ─────────────────────────────────────────────────────────────

var storeDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Short:   "Delete a named panel",
	Example: `  panel store delete close-2024`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		if err := deps.Store.DeletePanel(args[0]); err != nil {
			return fmt.Errorf("deleting panel: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted panel %q\n", args[0])
		return nil
	},
}

// ─── store stats ──────────────────────────────────────────────────────────────

var storeStatsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show row counts and sizes for each bucket",
	Example: `  panel store stats`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		stats, err := deps.Store.Stats()
		if err != nil {
			return fmt.Errorf("reading store stats: %w", err)
		}

		sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })

		fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n\n", deps.Store.Path())
		printSimpleTable(cmd.OutOrStdout(), []string{"BUCKET", "ROWS", "SIZE"}, func(add func(...string)) {
			for _, s := range stats {
				add(s.Name, fmt.Sprintf("%d", s.Count), humanBytes(s.Bytes))
			}
		})
		return nil
	},
}

// ─── store clear ──────────────────────────────────────────────────────────────

var (
	storeClearAll    bool
	storeClearBucket string
)

var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete entries from the local store",
	Long: `Delete entries from one or all buckets.

Note: bbolt does not shrink the database file automatically after clearing.
Free pages are reused internally on the next write.`,
	Example: `  panel store clear --all
  panel store clear --bucket snapshots`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !storeClearAll && storeClearBucket == "" {
			return fmt.Errorf("specify --all or --bucket <name>\n\nBuckets: panels, snapshots")
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		if err := deps.RequireStore(); err != nil {
			return err
		}
		defer deps.Close()

		if storeClearAll {
			if err := deps.Store.ClearAll(); err != nil {
				return fmt.Errorf("clearing all buckets: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Cleared all buckets")
			return nil
		}

		if err := deps.Store.ClearBucket(storeClearBucket); err != nil {
			return fmt.Errorf("clearing bucket %q: %w", storeClearBucket, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared bucket %q\n", storeClearBucket)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePutCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeDeleteCmd)
	storeCmd.AddCommand(storeStatsCmd)
	storeCmd.AddCommand(storeClearCmd)

	storeClearCmd.Flags().BoolVar(&storeClearAll, "all", false, "clear every bucket")
	storeClearCmd.Flags().StringVar(&storeClearBucket, "bucket", "", "clear a single bucket: panels|snapshots")
}
