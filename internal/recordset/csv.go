package recordset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrEmptyCSV indicates a CSV source with no header row.
var ErrEmptyCSV = errors.New("csv input has no header row")

// ReadCSV reads a CSV stream into a record set. The first record is the
// header; empty cells become null so downstream null handling is uniform.
func ReadCSV(r io.Reader) (*RecordSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyCSV
	}

	rs := New(records[0]...)

	for _, record := range records[1:] {
		row := make(Row, len(rs.Columns))

		for i, col := range rs.Columns {
			if i >= len(record) || record[i] == "" {
				row[col] = nil

				continue
			}

			row[col] = record[i]
		}

		rs.Append(row)
	}

	return rs, nil
}

// ReadCSVFile reads a local CSV file into a record set.
func ReadCSVFile(path string) (*RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// WriteCSV writes the record set as UTF-8 CSV with a header row of column
// names. Null cells render as empty fields.
func (rs *RecordSet) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(rs.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, len(rs.Columns))

	for _, row := range rs.Rows {
		for i, col := range rs.Columns {
			record[i] = AsString(row[col])
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()

	return writer.Error()
}

// WriteCSVFile overwrites path with the record set, creating the parent
// directory when needed.
func (rs *RecordSet) WriteCSVFile(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer f.Close()

	if err := rs.WriteCSV(f); err != nil {
		return err
	}

	return f.Close()
}
