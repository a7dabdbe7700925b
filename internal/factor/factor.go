// Package factor implements the derived-factor transforms over wide tables.
// Each transform is a pure function: it reads one table and builds a new one
// with the same index and column names, never mutating its input.
package factor

import (
	"github.com/quantpanel/panel/internal/wide"
)

// PctChange computes (v[t] - v[t-period]) / v[t-period] for every value
// column. Rows t < period are missing. The result at a row is missing when
// either input is missing, and also when the denominator is exactly zero,
// never ±Inf.
func PctChange(t *wide.Table, period int) (*wide.Table, error) {
	if period < 1 {
		return nil, &wide.InvalidParameterError{Name: "period", Value: period}
	}

	rows := t.Len()
	names := t.Columns()
	cols := make([]wide.Column, 0, len(names))
	for _, name := range names {
		src, _ := t.Values(name)
		out := make([]float64, rows)
		for i := 0; i < rows; i++ {
			if i < period {
				out[i] = wide.Missing()
				continue
			}
			curr, prev := src[i], src[i-period]
			if wide.IsMissing(curr) || wide.IsMissing(prev) || prev == 0 {
				out[i] = wide.Missing()
			} else {
				out[i] = (curr - prev) / prev
			}
		}
		cols = append(cols, wide.Column{Name: name, Values: out})
	}
	return wide.New(t.TimeColumn(), t.Index(), cols)
}

// Momentum computes the rolling sum of single-period returns over window
// rows: for each column, Momentum[t] = sum(r[t-window+1 .. t]) where
// r = PctChange(t, 1). A window containing any missing return is missing;
// partial sums are never emitted. Because r[0] is always missing, the first
// row that can be valid is index window.
func Momentum(t *wide.Table, window int) (*wide.Table, error) {
	if window < 1 {
		return nil, &wide.InvalidParameterError{Name: "window", Value: window}
	}

	returns, err := PctChange(t, 1)
	if err != nil {
		return nil, err
	}

	rows := t.Len()
	names := returns.Columns()
	cols := make([]wide.Column, 0, len(names))
	for _, name := range names {
		r, _ := returns.Values(name)
		out := make([]float64, rows)
		for i := 0; i < rows; i++ {
			start := i - window + 1
			if start < 0 {
				out[i] = wide.Missing()
				continue
			}
			sum := 0.0
			ok := true
			for j := start; j <= i; j++ {
				if wide.IsMissing(r[j]) {
					ok = false
					break
				}
				sum += r[j]
			}
			if ok {
				out[i] = sum
			} else {
				out[i] = wide.Missing()
			}
		}
		cols = append(cols, wide.Column{Name: name, Values: out})
	}
	return wide.New(t.TimeColumn(), t.Index(), cols)
}
