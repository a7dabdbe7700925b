package wide

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quantpanel/panel/internal/util"
)

// Load reads a wide table from the CSV file at path.
//
// The first row is the header and must contain timeColumn; dates are
// YYYY-MM-DD; an empty field is a missing value. File access errors are
// returned as-is (errors.Is(err, fs.ErrNotExist) for a missing file);
// structural problems surface as the typed errors of this package.
func Load(path, timeColumn string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, timeColumn)
}

// Read parses a wide table from r in the CSV file format.
func Read(r io.Reader, timeColumn string) (*Table, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		// csv.Reader enforces rectangular input; a ragged row is a schema
		// violation, not an I/O failure.
		var pe *csv.ParseError
		if errors.As(err, &pe) && errors.Is(pe.Err, csv.ErrFieldCount) {
			return nil, &SchemaError{Row: pe.Line - 2, Column: "", Reason: "row width does not match the header"}
		}
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return FromRecords(records, timeColumn)
}

// Save writes the table to path in the CSV file format. The file is fully
// written to a temporary file in the destination directory and renamed into
// place, so a failed save leaves no partial file behind.
func (t *Table) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := t.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Write writes the table to w in the CSV file format: the time column name
// first, then value columns in stored order, one row per index entry.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := append([]string{t.timeColumn}, t.names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for i, date := range t.index {
		row[0] = util.FormatDate(date)
		for j, name := range t.names {
			row[j+1] = util.FormatCell(t.columns[name][i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
