// Package dataset provides the tabular frame the pipeline stages pass through
// files: ordered named columns over string cells, with CSV persistence and a
// seeded train/test split.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Frame is an ordered-column table. Cells are kept as strings; typed decoding
// happens at the ingestion boundary (see the insurance package).
type Frame struct {
	Columns []string
	Rows    [][]string
}

func New(columns []string) *Frame {
	return &Frame{Columns: append([]string(nil), columns...)}
}

// Append adds one row. The row length must match the column count.
func (f *Frame) Append(row []string) error {
	if len(row) != len(f.Columns) {
		return fmt.Errorf("row has %d cells, frame has %d columns", len(row), len(f.Columns))
	}
	f.Rows = append(f.Rows, row)
	return nil
}

func (f *Frame) NumRows() int { return len(f.Rows) }

// ColumnIndex returns the position of the named column.
func (f *Frame) ColumnIndex(name string) (int, bool) {
	for i, c := range f.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.ColumnIndex(name)
	return ok
}

// Drop removes the named column if present.
func (f *Frame) Drop(name string) {
	idx, ok := f.ColumnIndex(name)
	if !ok {
		return
	}
	f.Columns = append(f.Columns[:idx], f.Columns[idx+1:]...)
	for i, row := range f.Rows {
		f.Rows[i] = append(row[:idx], row[idx+1:]...)
	}
}

// WriteCSV persists the frame with a header row, creating parent directories.
func (f *Frame) WriteCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(f.Columns); err != nil {
		return err
	}
	for _, row := range f.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCSV loads a frame written by WriteCSV.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("csv file has no header row")
	}

	f := New(records[0])
	for _, row := range records[1:] {
		if err := f.Append(row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
