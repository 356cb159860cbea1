package ml

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// LabeledArray is a transformed dataset: the feature matrix with its labels,
// persisted between the transformation and training stages.
type LabeledArray struct {
	X *mat.Dense
	Y []int
}

// Save writes the array as CSV, features first and the label last. Floats are
// written at full precision so a round trip is lossless.
func (a *LabeledArray) Save(w io.Writer) error {
	rows, cols := a.X.Dims()
	if len(a.Y) != rows {
		return fmt.Errorf("array has %d rows but %d labels", rows, len(a.Y))
	}

	cw := csv.NewWriter(w)
	record := make([]string, cols+1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			record[j] = strconv.FormatFloat(a.X.At(i, j), 'g', -1, 64)
		}
		record[cols] = strconv.Itoa(a.Y[i])
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads an array written by Save.
func (a *LabeledArray) Load(r io.Reader) error {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read array: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("array file is empty")
	}

	cols := len(records[0]) - 1
	if cols < 1 {
		return fmt.Errorf("array rows need at least one feature and a label")
	}

	a.X = mat.NewDense(len(records), cols, nil)
	a.Y = make([]int, len(records))
	for i, record := range records {
		if len(record) != cols+1 {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(record), cols+1)
		}
		for j := 0; j < cols; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return fmt.Errorf("row %d: %w", i, err)
			}
			a.X.Set(i, j, v)
		}
		label, err := strconv.Atoi(record[cols])
		if err != nil {
			return fmt.Errorf("row %d label: %w", i, err)
		}
		a.Y[i] = label
	}
	return nil
}
