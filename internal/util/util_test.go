package util_test

import (
	"math"
	"testing"
	"time"

	"github.com/quantpanel/panel/internal/util"
)

func TestParseDate(t *testing.T) {
	d, err := util.ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("got %v, want %v", d, want)
	}
}

func TestParseDateRejectsBadInput(t *testing.T) {
	for _, s := range []string{"", "15/03/2024", "2024-3-15", "2024-13-01", "not-a-date"} {
		if _, err := util.ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q): expected error", s)
		}
	}
}

func TestFormatDateRoundTrip(t *testing.T) {
	d, err := util.ParseDate("1999-12-31")
	if err != nil {
		t.Fatal(err)
	}
	if got := util.FormatDate(d); got != "1999-12-31" {
		t.Errorf("got %q", got)
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1.5, "1.5"},
		{0, "0"},
		{-2.25, "-2.25"},
		{math.NaN(), "."},
	}
	for _, c := range cases {
		if got := util.FormatValue(c.in); got != c.want {
			t.Errorf("FormatValue(%g): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatCellMissingIsEmpty(t *testing.T) {
	if got := util.FormatCell(math.NaN()); got != "" {
		t.Errorf("missing cell: got %q, want empty", got)
	}
	if got := util.FormatCell(0); got != "0" {
		t.Errorf("zero cell: got %q, want \"0\"", got)
	}
}
