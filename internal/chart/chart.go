// Package chart provides ASCII terminal chart rendering for a single column
// of a wide table: a horizontal bar chart, one bar per row. Missing values
// render as gaps, not zeros, and no external dependencies are needed beyond
// the Go standard library.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/quantpanel/panel/internal/util"
	"github.com/quantpanel/panel/internal/wide"
)

// BarOptions controls horizontal bar chart rendering.
type BarOptions struct {
	// Width is the total character width available for the chart.
	// If 0, auto-detects from $COLUMNS, falls back to 80.
	Width int
	// MaxBars is the maximum number of bars to render. If the column has
	// more rows than MaxBars, the last MaxBars rows are shown. If 0, no
	// limit is applied.
	MaxBars int
}

// bar is one renderable row: a date label and a present value.
type bar struct {
	label string
	value float64
}

// Bar renders a horizontal bar chart of the named column to w, one bar per
// row. Rows with a missing value are skipped.
func Bar(w io.Writer, t *wide.Table, column string, opts BarOptions) error {
	vals, ok := t.Values(column)
	if !ok {
		return fmt.Errorf("chart: no column %q in table", column)
	}

	var valid []bar
	for i, date := range t.Index() {
		if !wide.IsMissing(vals[i]) {
			valid = append(valid, bar{label: util.FormatDate(date), value: vals[i]})
		}
	}
	if len(valid) < 1 {
		return fmt.Errorf("chart: column %q has no present values to render", column)
	}

	// Cap number of bars — take the last N rows if over limit.
	if opts.MaxBars > 0 && len(valid) > opts.MaxBars {
		valid = valid[len(valid)-opts.MaxBars:]
	}

	totalWidth := opts.Width
	if totalWidth <= 0 {
		totalWidth = termWidth()
	}

	minVal, maxVal := valid[0].value, valid[0].value
	for _, b := range valid[1:] {
		if b.value < minVal {
			minVal = b.value
		}
		if b.value > maxVal {
			maxVal = b.value
		}
	}

	dateWidth := len(valid[0].label)
	valWidth := 0
	for _, b := range valid {
		if l := len(formatFloat(b.value)); l > valWidth {
			valWidth = l
		}
	}

	// Bar area width = totalWidth - labels - separators (4 chars).
	barAreaWidth := totalWidth - dateWidth - valWidth - 4
	if barAreaWidth < 4 {
		barAreaWidth = 4
	}

	valRange := maxVal - minVal
	if valRange == 0 {
		valRange = 1 // flat series
	}

	hasNeg := minVal < 0
	var zeroPos int // column index of the zero line within the bar area
	if hasNeg {
		zeroPos = int(math.Round((-minVal / valRange) * float64(barAreaWidth-1)))
	}

	fmt.Fprintf(w, "%s  %s – %s\n", column, valid[0].label, valid[len(valid)-1].label)

	for _, b := range valid {
		var blocks string
		if hasNeg {
			blocks = buildBiBar(b.value, minVal, maxVal, barAreaWidth, zeroPos)
		} else {
			barLen := int(math.Round((b.value - minVal) / valRange * float64(barAreaWidth)))
			if barLen < 1 {
				barLen = 1 // every bar stays visible
			}
			if barLen > barAreaWidth {
				barLen = barAreaWidth
			}
			blocks = strings.Repeat("█", barLen)
		}

		fmt.Fprintf(w, "%-*s  %*s  %s\n",
			dateWidth, b.label,
			valWidth, formatFloat(b.value),
			blocks,
		)
	}

	return nil
}

// buildBiBar renders a bar that may extend left (negative) or right (positive)
// from a zero baseline at zeroPos within a field of width barAreaWidth.
func buildBiBar(val, minVal, maxVal float64, barAreaWidth, zeroPos int) string {
	valRange := maxVal - minVal
	buf := []rune(strings.Repeat(" ", barAreaWidth))

	if zeroPos >= 0 && zeroPos < barAreaWidth {
		buf[zeroPos] = '│'
	}

	if val >= 0 {
		end := zeroPos + int(math.Round(val/valRange*float64(barAreaWidth-1)))
		if end > barAreaWidth {
			end = barAreaWidth
		}
		for i := zeroPos + 1; i <= end && i < barAreaWidth; i++ {
			buf[i] = '█'
		}
	} else {
		start := zeroPos - int(math.Round((-val)/valRange*float64(barAreaWidth-1)))
		if start < 0 {
			start = 0
		}
		for i := start; i < zeroPos && i < barAreaWidth; i++ {
			buf[i] = '█'
		}
	}

	return string(buf)
}

// formatFloat formats a float for bar labels: no unnecessary trailing zeros,
// at least one decimal place, compact notation for large numbers.
func formatFloat(v float64) string {
	abs := math.Abs(v)
	var s string
	switch {
	case abs == 0:
		return "0"
	case abs >= 1e6:
		s = strconv.FormatFloat(v/1e6, 'f', 1, 64) + "M"
	case abs >= 1e3:
		s = strconv.FormatFloat(v/1e3, 'f', 1, 64) + "K"
	case abs >= 100:
		s = strconv.FormatFloat(v, 'f', 1, 64)
	case abs >= 1:
		s = strconv.FormatFloat(v, 'f', 2, 64)
	default:
		s = strconv.FormatFloat(v, 'f', 4, 64)
	}
	if strings.Contains(s, ".") && !strings.HasSuffix(s, "M") && !strings.HasSuffix(s, "K") {
		s = strings.TrimRight(s, "0")
		if strings.HasSuffix(s, ".") {
			s += "0"
		}
	}
	return s
}

// termWidth returns the terminal width from $COLUMNS, defaulting to 80.
func termWidth() int {
	if cols := os.Getenv("COLUMNS"); cols != "" {
		if n, err := strconv.Atoi(cols); err == nil && n > 20 {
			return n
		}
	}
	return 80
}
