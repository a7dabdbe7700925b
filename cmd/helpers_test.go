package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quantpanel/panel/internal/render"
)

func TestResolveFormat(t *testing.T) {
	orig := globalFlags.Format
	defer func() { globalFlags.Format = orig }()

	globalFlags.Format = ""
	if got := resolveFormat(""); got != render.FormatTable {
		t.Errorf("default: got %q", got)
	}
	if got := resolveFormat("json"); got != "json" {
		t.Errorf("config fallback: got %q", got)
	}

	globalFlags.Format = "csv"
	if got := resolveFormat("json"); got != "csv" {
		t.Errorf("flag should win over config: got %q", got)
	}
}

func TestPrintKVTableAligns(t *testing.T) {
	var buf bytes.Buffer
	printKVTable(&buf, [][]string{
		{"short", "1"},
		{"a much longer key", "2"},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	// Values line up in the same column.
	if strings.Index(lines[0], "1") != strings.Index(lines[1], "2") {
		t.Errorf("values not aligned:\n%s", buf.String())
	}
}

func TestPrintSimpleTable(t *testing.T) {
	var buf bytes.Buffer
	printSimpleTable(&buf, []string{"NAME", "ROWS"}, func(add func(...string)) {
		add("prices", "42")
	})
	out := buf.String()
	for _, want := range []string{"NAME", "ROWS", "prices", "42"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestHumanBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}
	for _, c := range cases {
		if got := humanBytes(c.in); got != c.want {
			t.Errorf("humanBytes(%d): got %q, want %q", c.in, got, c.want)
		}
	}
}
