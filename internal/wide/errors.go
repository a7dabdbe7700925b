package wide

import "fmt"

// Construction and transform failures are typed so callers can distinguish
// them with errors.As. File access failures are not wrapped in a custom type;
// they carry the underlying *fs.PathError so errors.Is(err, fs.ErrNotExist)
// keeps working.

// MissingColumnError reports that the requested time column is not present
// in the source header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("time column %q not found", e.Column)
}

// UnsortedIndexError reports a date index that is not strictly increasing:
// either out of order or a duplicate date.
type UnsortedIndexError struct {
	Row  int    // zero-based data row of the offending date
	Date string // the offending date, YYYY-MM-DD
}

func (e *UnsortedIndexError) Error() string {
	return fmt.Sprintf("row %d: date %s is not after the previous date", e.Row, e.Date)
}

// SchemaError reports a malformed value cell, a ragged row, or a duplicate
// column name.
type SchemaError struct {
	Row    int    // zero-based data row (-1 for header-level problems)
	Column string // column name, if known
	Cell   string // offending cell contents, if any
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("row %d, column %q: %s (got %q)", e.Row, e.Column, e.Reason, e.Cell)
}

// FormatError reports an unparseable date cell.
type FormatError struct {
	Row  int
	Cell string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("row %d: invalid date %q: expected YYYY-MM-DD", e.Row, e.Cell)
}

// InvalidParameterError reports a non-positive period or window.
type InvalidParameterError struct {
	Name  string
	Value int
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s must be >= 1, got %d", e.Name, e.Value)
}
