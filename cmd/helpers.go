package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/quantpanel/panel/internal/render"
	"github.com/quantpanel/panel/internal/wide"
)

// resolveFormat returns the effective format string, falling back to "table".
func resolveFormat(cfgFormat string) string {
	if globalFlags.Format != "" {
		return globalFlags.Format
	}
	if cfgFormat != "" {
		return cfgFormat
	}
	return render.FormatTable
}

// loadTable reads a wide table from path, or from stdin when path is "-".
func loadTable(path, timeColumn string) (*wide.Table, error) {
	if path == "-" {
		t, err := wide.Read(os.Stdin, timeColumn)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return t, nil
	}
	t, err := wide.Load(path, timeColumn)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return t, nil
}

// writeTable writes t to --out (or the given default path) in the resolved
// format. An empty or "-" destination means stdout. When the destination is
// a file and no format was forced, CSV is written so the result is loadable
// again.
func writeTable(t *wide.Table, cfgFormat string) error {
	dest := globalFlags.Out
	format := resolveFormat(cfgFormat)
	if dest != "" && dest != "-" && globalFlags.Format == "" {
		format = render.FormatCSV
	}
	return render.TableTo(dest, t, format)
}

// printSimpleTable renders a simple table with headers using tablewriter.
// The add callback is called with row values as variadic strings.
func printSimpleTable(w io.Writer, headers []string, fill func(add func(...string))) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	fill(func(cols ...string) {
		tw.Append(cols)
	})
	tw.Render()
}

// printKVTable renders a two-column key/value listing with aligned columns.
func printKVTable(w io.Writer, rows [][]string) {
	maxKey := 0
	for _, r := range rows {
		if len(r[0]) > maxKey {
			maxKey = len(r[0])
		}
	}
	for _, r := range rows {
		padding := strings.Repeat(" ", maxKey-len(r[0]))
		fmt.Fprintf(w, "  %s%s  %s\n", r[0], padding, r[1])
	}
}

// humanBytes formats a byte count for display.
func humanBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
