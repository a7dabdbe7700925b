package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/quantpanel/panel/internal/analyze"
	"github.com/quantpanel/panel/internal/render"
	"github.com/quantpanel/panel/internal/wide"
)

func sampleTable(t *testing.T) *wide.Table {
	t.Helper()
	index := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	tbl, err := wide.New("date", index, []wide.Column{
		{Name: "A", Values: []float64{1.5, wide.Missing()}},
		{Name: "B", Values: []float64{0, -2.25}},
	})
	if err != nil {
		t.Fatalf("wide.New: %v", err)
	}
	return tbl
}

func TestTableCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Table(&buf, sampleTable(t), render.FormatCSV); err != nil {
		t.Fatalf("render.Table: %v", err)
	}
	want := "date,A,B\n2024-01-01,1.5,0\n2024-01-02,,-2.25\n"
	if buf.String() != want {
		t.Errorf("csv output:\n got  %q\n want %q", buf.String(), want)
	}
}

func TestTableTSV(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Table(&buf, sampleTable(t), render.FormatTSV); err != nil {
		t.Fatalf("render.Table: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "date\tA\tB" {
		t.Errorf("header: %q", lines[0])
	}
	if lines[2] != "2024-01-02\t\t-2.25" {
		t.Errorf("missing cell must be empty in tsv: %q", lines[2])
	}
}

func TestTableJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Table(&buf, sampleTable(t), render.FormatJSON); err != nil {
		t.Fatalf("render.Table: %v", err)
	}

	var out struct {
		TimeColumn string   `json:"time_column"`
		Index      []string `json:"index"`
		Columns    []struct {
			Name   string     `json:"name"`
			Values []*float64 `json:"values"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if out.TimeColumn != "date" {
		t.Errorf("time_column: %q", out.TimeColumn)
	}
	if len(out.Index) != 2 || out.Index[0] != "2024-01-01" {
		t.Errorf("index: %v", out.Index)
	}
	if len(out.Columns) != 2 || out.Columns[0].Name != "A" {
		t.Fatalf("columns: %+v", out.Columns)
	}
	// Missing values are serialised as null, never NaN.
	if out.Columns[0].Values[1] != nil {
		t.Errorf("expected null for missing value, got %v", *out.Columns[0].Values[1])
	}
	if out.Columns[0].Values[0] == nil || *out.Columns[0].Values[0] != 1.5 {
		t.Errorf("present value mangled: %v", out.Columns[0].Values[0])
	}
}

func TestTableMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Table(&buf, sampleTable(t), render.FormatMD); err != nil {
		t.Fatalf("render.Table: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "| date | A | B |") {
		t.Errorf("markdown header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "| 2024-01-02 | . | -2.25 |") {
		t.Errorf("missing value must render as \".\" in markdown:\n%s", out)
	}
	if !strings.Contains(out, "|----|") {
		t.Error("markdown separator row absent")
	}
}

func TestTableTerminal(t *testing.T) {
	var buf bytes.Buffer
	if err := render.Table(&buf, sampleTable(t), render.FormatTable); err != nil {
		t.Fatalf("render.Table: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"DATE", "2024-01-01", "1.5", "."} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q:\n%s", want, out)
		}
	}
}

func TestSummariesJSON(t *testing.T) {
	sums := []analyze.Summary{{Column: "A", Count: 3, Missing: 1, MissingPct: 33.3, Mean: 2}}
	var buf bytes.Buffer
	if err := render.Summaries(&buf, sums, render.FormatJSON); err != nil {
		t.Fatalf("render.Summaries: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 1 || out[0]["column"] != "A" {
		t.Errorf("summaries json: %v", out)
	}
}

func TestSummariesTable(t *testing.T) {
	sums := []analyze.Summary{{Column: "A", Count: 2, Missing: 1, MissingPct: 50, Mean: 4.5}}
	var buf bytes.Buffer
	if err := render.Summaries(&buf, sums, render.FormatTable); err != nil {
		t.Fatalf("render.Summaries: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"COLUMN", "1 (50.0%)", "4.5000"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary table missing %q:\n%s", want, out)
		}
	}
}
