// Package render converts wide tables and summaries into human-readable or
// machine-parseable output. Each format is a separate function; the top-level
// Table and Summaries dispatchers select based on the format string.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/quantpanel/panel/internal/analyze"
	"github.com/quantpanel/panel/internal/util"
	"github.com/quantpanel/panel/internal/wide"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
	FormatMD    = "md"
)

// Table writes t to w in the specified format.
func Table(w io.Writer, t *wide.Table, format string) error {
	switch format {
	case FormatJSON:
		return tableJSON(w, t)
	case FormatCSV:
		return tableDelimited(w, t, ',')
	case FormatTSV:
		return tableDelimited(w, t, '\t')
	case FormatMD:
		return tableMarkdown(w, t)
	default:
		return tableTerminal(w, t)
	}
}

// TableTo writes to stdout by default; if path is non-empty, writes to file.
// Path "-" also means stdout.
func TableTo(path string, t *wide.Table, format string) error {
	if path == "" || path == "-" {
		return Table(os.Stdout, t, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return Table(f, t, format)
}

// ─── Terminal table ───────────────────────────────────────────────────────────

func tableTerminal(w io.Writer, t *wide.Table) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(append([]string{t.TimeColumn()}, t.Columns()...))
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	tw.SetAutoWrapText(false)

	names := t.Columns()
	cols := make([][]float64, len(names))
	for i, name := range names {
		cols[i], _ = t.Values(name)
	}
	for i, date := range t.Index() {
		row := make([]string, 0, len(names)+1)
		row = append(row, util.FormatDate(date))
		for _, c := range cols {
			row = append(row, util.FormatValue(c[i]))
		}
		tw.Append(row)
	}
	tw.Render()
	return nil
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

// jsonColumn mirrors the store's on-disk shape: null for missing values.
type jsonColumn struct {
	Name   string     `json:"name"`
	Values []*float64 `json:"values"`
}

type jsonTable struct {
	TimeColumn string       `json:"time_column"`
	Index      []string     `json:"index"`
	Columns    []jsonColumn `json:"columns"`
}

func tableJSON(w io.Writer, t *wide.Table) error {
	out := jsonTable{TimeColumn: t.TimeColumn()}
	for _, d := range t.Index() {
		out.Index = append(out.Index, util.FormatDate(d))
	}
	for _, name := range t.Columns() {
		vals, _ := t.Values(name)
		jc := jsonColumn{Name: name, Values: make([]*float64, len(vals))}
		for i, v := range vals {
			if !wide.IsMissing(v) {
				v := v
				jc.Values[i] = &v
			}
		}
		out.Columns = append(out.Columns, jc)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ─── CSV / TSV ────────────────────────────────────────────────────────────────

// tableDelimited emits the canonical file format (empty field = missing),
// with a configurable separator for TSV.
func tableDelimited(w io.Writer, t *wide.Table, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	names := t.Columns()
	_ = cw.Write(append([]string{t.TimeColumn()}, names...))

	cols := make([][]float64, len(names))
	for i, name := range names {
		cols[i], _ = t.Values(name)
	}
	row := make([]string, len(names)+1)
	for i, date := range t.Index() {
		row[0] = util.FormatDate(date)
		for j, c := range cols {
			row[j+1] = util.FormatCell(c[i])
		}
		_ = cw.Write(row)
	}

	cw.Flush()
	return cw.Error()
}

// ─── Markdown ─────────────────────────────────────────────────────────────────

func tableMarkdown(w io.Writer, t *wide.Table) error {
	names := t.Columns()
	fmt.Fprintf(w, "| %s |", t.TimeColumn())
	for _, name := range names {
		fmt.Fprintf(w, " %s |", name)
	}
	fmt.Fprint(w, "\n|")
	for i := 0; i <= len(names); i++ {
		fmt.Fprint(w, "----|")
	}
	fmt.Fprintln(w)

	cols := make([][]float64, len(names))
	for i, name := range names {
		cols[i], _ = t.Values(name)
	}
	for i, date := range t.Index() {
		fmt.Fprintf(w, "| %s |", util.FormatDate(date))
		for _, c := range cols {
			fmt.Fprintf(w, " %s |", util.FormatValue(c[i]))
		}
		fmt.Fprintln(w)
	}
	return nil
}

// ─── Summaries ────────────────────────────────────────────────────────────────

// Summaries writes per-column summaries to w in the specified format.
// Only table and json are meaningful; other formats fall back to table.
func Summaries(w io.Writer, sums []analyze.Summary, format string) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sums)
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"COLUMN", "COUNT", "MISSING", "MEAN", "STD", "MIN", "MEDIAN", "MAX", "FIRST", "LAST"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_RIGHT)
	tw.SetAutoWrapText(false)

	for _, s := range sums {
		tw.Append([]string{
			s.Column,
			strconv.Itoa(s.Count),
			fmt.Sprintf("%d (%.1f%%)", s.Missing, s.MissingPct),
			fmtStat(s.Mean),
			fmtStat(s.Std),
			fmtStat(s.Min),
			fmtStat(s.Median),
			fmtStat(s.Max),
			fmtStat(s.First),
			fmtStat(s.Last),
		})
	}
	tw.Render()
	return nil
}

// fmtStat formats a statistic with fixed precision, "." for NaN.
func fmtStat(v float64) string {
	if wide.IsMissing(v) {
		return "."
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
