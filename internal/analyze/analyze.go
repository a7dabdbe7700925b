// Package analyze computes per-column descriptive statistics over a wide
// table. All functions are pure; no I/O.
package analyze

import (
	"math"
	"sort"

	"github.com/quantpanel/panel/internal/wide"
)

// Summary holds descriptive statistics for one value column.
type Summary struct {
	Column     string  `json:"column"`
	Count      int     `json:"count"`       // total rows
	Missing    int     `json:"missing"`     // missing-marker count
	MissingPct float64 `json:"missing_pct"` // percent missing
	Mean       float64 `json:"mean"`
	Std        float64 `json:"std"`
	Min        float64 `json:"min"`
	Median     float64 `json:"median"`
	Max        float64 `json:"max"`
	First      float64 `json:"first"` // first present value
	Last       float64 `json:"last"`  // last present value
}

// Summarize computes a Summary for every value column, in column order.
// Missing values are excluded from the numeric statistics but counted.
func Summarize(t *wide.Table) []Summary {
	names := t.Columns()
	out := make([]Summary, 0, len(names))
	for _, name := range names {
		vals, _ := t.Values(name)
		out = append(out, summarizeColumn(name, vals))
	}
	return out
}

func summarizeColumn(name string, vals []float64) Summary {
	s := Summary{Column: name, Count: len(vals)}

	var present []float64
	for _, v := range vals {
		if wide.IsMissing(v) {
			s.Missing++
		} else {
			present = append(present, v)
		}
	}
	if s.Count > 0 {
		s.MissingPct = float64(s.Missing) / float64(s.Count) * 100
	}
	if len(present) == 0 {
		s.Mean = math.NaN()
		s.Std = math.NaN()
		s.Min = math.NaN()
		s.Median = math.NaN()
		s.Max = math.NaN()
		s.First = math.NaN()
		s.Last = math.NaN()
		return s
	}

	sorted := make([]float64, len(present))
	copy(sorted, present)
	sort.Float64s(sorted)

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Mean = sumF(present) / float64(len(present))
	s.Std = stddevF(present, s.Mean)
	s.Median = percentile(sorted, 50)
	s.First = present[0]
	s.Last = present[len(present)-1]
	return s
}

// ─── Math helpers ─────────────────────────────────────────────────────────────

func sumF(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}

func stddevF(vals []float64, m float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	var sq float64
	for _, v := range vals {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(vals)-1))
}

func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	idx := p / 100 * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
