// Package wide implements the wide-table data model used for factor
// research: one strictly increasing date index plus one float64 column per
// instrument, every column exactly as long as the index.
//
// Tables are immutable after construction. Constructors copy the caller's
// slices, accessors return copies, and transforms build new tables, so
// concurrent readers never need coordination.
//
// Missing values are represented as math.NaN() in memory and as an empty
// field in the CSV file format.
package wide

import (
	"math"
	"strconv"
	"time"

	"github.com/quantpanel/panel/internal/util"
)

// Column is a named value series, used to feed New.
type Column struct {
	Name   string
	Values []float64
}

// Table is a wide table: a date index and N aligned value columns.
// The zero value is not usable; build one with New, FromRecords, or Load.
type Table struct {
	timeColumn string
	index      []time.Time
	names      []string // column order as supplied
	columns    map[string][]float64
}

// Missing is the in-memory missing-value marker.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// New builds a Table from an already-parsed index and columns.
//
// The index must be strictly increasing (duplicates included in "not
// increasing"); every column must have exactly len(index) values and a
// unique name different from timeColumn. All slices are copied.
func New(timeColumn string, index []time.Time, cols []Column) (*Table, error) {
	for i := 1; i < len(index); i++ {
		if !index[i].After(index[i-1]) {
			return nil, &UnsortedIndexError{Row: i, Date: util.FormatDate(index[i])}
		}
	}

	t := &Table{
		timeColumn: timeColumn,
		index:      append([]time.Time(nil), index...),
		columns:    make(map[string][]float64, len(cols)),
	}
	for _, c := range cols {
		if c.Name == timeColumn {
			return nil, &SchemaError{Row: -1, Column: c.Name, Reason: "column name collides with the time column"}
		}
		if _, dup := t.columns[c.Name]; dup {
			return nil, &SchemaError{Row: -1, Column: c.Name, Reason: "duplicate column name"}
		}
		if len(c.Values) != len(index) {
			return nil, &SchemaError{Row: -1, Column: c.Name, Reason: "column length does not match the date index"}
		}
		t.names = append(t.names, c.Name)
		t.columns[c.Name] = append([]float64(nil), c.Values...)
	}
	return t, nil
}

// FromRecords builds a Table from a header row plus string data rows — the
// shape produced by csv.Reader.ReadAll. The header must contain timeColumn;
// the remaining header fields become value columns in header order. Empty
// cells are missing values; any other non-numeric cell is a SchemaError.
// Zero data rows is not an error and yields a valid empty table.
func FromRecords(records [][]string, timeColumn string) (*Table, error) {
	if len(records) == 0 {
		return nil, &MissingColumnError{Column: timeColumn}
	}
	header := records[0]
	rows := records[1:]

	timeIdx := -1
	for i, name := range header {
		if name == timeColumn {
			timeIdx = i
			break
		}
	}
	if timeIdx < 0 {
		return nil, &MissingColumnError{Column: timeColumn}
	}

	index := make([]time.Time, 0, len(rows))
	cols := make([]Column, 0, len(header)-1)
	for i, name := range header {
		if i == timeIdx {
			continue
		}
		cols = append(cols, Column{Name: name, Values: make([]float64, 0, len(rows))})
	}

	for r, row := range rows {
		if len(row) != len(header) {
			return nil, &SchemaError{Row: r, Column: "", Reason: "row width does not match the header"}
		}
		date, err := util.ParseDate(row[timeIdx])
		if err != nil {
			return nil, &FormatError{Row: r, Cell: row[timeIdx]}
		}
		index = append(index, date)

		ci := 0
		for i, cell := range row {
			if i == timeIdx {
				continue
			}
			v, err := parseCell(cell)
			if err != nil {
				return nil, &SchemaError{Row: r, Column: header[i], Cell: cell, Reason: "not a number"}
			}
			cols[ci].Values = append(cols[ci].Values, v)
			ci++
		}
	}

	return New(timeColumn, index, cols)
}

// parseCell parses a value cell: empty means missing, anything else must be
// a float. The error carries no context; callers wrap it in a SchemaError.
func parseCell(s string) (float64, error) {
	if s == "" {
		return Missing(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// ─── Accessors ────────────────────────────────────────────────────────────────

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.index) }

// TimeColumn returns the name of the date column.
func (t *Table) TimeColumn() string { return t.timeColumn }

// Index returns a copy of the date index.
func (t *Table) Index() []time.Time {
	return append([]time.Time(nil), t.index...)
}

// Columns returns the value column names in stored order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// Values returns a copy of the named column's values and whether the column
// exists.
func (t *Table) Values(name string) ([]float64, bool) {
	vals, ok := t.columns[name]
	if !ok {
		return nil, false
	}
	return append([]float64(nil), vals...), true
}

// Equal reports whether two tables have the same time column, index, column
// names (in order), and values. Missing markers compare equal to each other,
// so Equal is usable for round-trip checks.
func (t *Table) Equal(o *Table) bool {
	if t.timeColumn != o.timeColumn || len(t.index) != len(o.index) || len(t.names) != len(o.names) {
		return false
	}
	for i := range t.index {
		if !t.index[i].Equal(o.index[i]) {
			return false
		}
	}
	for i, name := range t.names {
		if o.names[i] != name {
			return false
		}
		a, b := t.columns[name], o.columns[name]
		for j := range a {
			if a[j] != b[j] && !(IsMissing(a[j]) && IsMissing(b[j])) {
				return false
			}
		}
	}
	return true
}
