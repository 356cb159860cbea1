// Package ml implements the learning primitives the pipeline trains and
// serves: a column-wise preprocessor, a random-forest classifier, binary
// classification metrics, a minority-class oversampler, and the estimator
// bundle that pairs a fitted preprocessor with a fitted forest.
package ml

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Preprocessor applies column-wise scaling: standard scaling for one set of
// columns, min-max scaling for another, passthrough for the rest. It is
// fitted on the training partition only and immutable afterwards.
type Preprocessor struct {
	// Columns is the feature order the preprocessor was built for.
	Columns []string `json:"columns"`

	StandardCols []string `json:"standard_cols"`
	MinMaxCols   []string `json:"minmax_cols"`

	// Fitted state, aligned with StandardCols / MinMaxCols.
	Mean []float64 `json:"mean,omitempty"`
	Std  []float64 `json:"std,omitempty"`
	Min  []float64 `json:"min,omitempty"`
	Max  []float64 `json:"max,omitempty"`

	Fitted bool `json:"fitted"`
}

// NewPreprocessor builds an unfitted preprocessor. Every scaled column must
// be one of columns.
func NewPreprocessor(columns, standardCols, minMaxCols []string) (*Preprocessor, error) {
	p := &Preprocessor{
		Columns:      append([]string(nil), columns...),
		StandardCols: append([]string(nil), standardCols...),
		MinMaxCols:   append([]string(nil), minMaxCols...),
	}
	if _, err := p.scaledIndices(); err != nil {
		return nil, err
	}
	return p, nil
}

type scaledIndices struct {
	standard []int
	minMax   []int
}

func (p *Preprocessor) scaledIndices() (scaledIndices, error) {
	pos := make(map[string]int, len(p.Columns))
	for i, c := range p.Columns {
		pos[c] = i
	}

	var idx scaledIndices
	for _, c := range p.StandardCols {
		i, ok := pos[c]
		if !ok {
			return idx, fmt.Errorf("standard-scaled column %q is not a feature column", c)
		}
		idx.standard = append(idx.standard, i)
	}
	for _, c := range p.MinMaxCols {
		i, ok := pos[c]
		if !ok {
			return idx, fmt.Errorf("min-max-scaled column %q is not a feature column", c)
		}
		idx.minMax = append(idx.minMax, i)
	}
	return idx, nil
}

// Fit computes the scaling statistics from x. Columns with zero variance or
// zero range scale to zero rather than dividing by zero.
func (p *Preprocessor) Fit(x mat.Matrix) error {
	rows, cols := x.Dims()
	if rows == 0 {
		return fmt.Errorf("cannot fit preprocessor on empty matrix")
	}
	if cols != len(p.Columns) {
		return fmt.Errorf("matrix has %d columns, preprocessor expects %d", cols, len(p.Columns))
	}

	idx, err := p.scaledIndices()
	if err != nil {
		return err
	}

	p.Mean = make([]float64, len(idx.standard))
	p.Std = make([]float64, len(idx.standard))
	for k, j := range idx.standard {
		var sum float64
		for i := 0; i < rows; i++ {
			sum += x.At(i, j)
		}
		mean := sum / float64(rows)

		var sq float64
		for i := 0; i < rows; i++ {
			d := x.At(i, j) - mean
			sq += d * d
		}
		std := 0.0
		if sq > 0 {
			std = math.Sqrt(sq / float64(rows))
		}

		p.Mean[k] = mean
		p.Std[k] = std
	}

	p.Min = make([]float64, len(idx.minMax))
	p.Max = make([]float64, len(idx.minMax))
	for k, j := range idx.minMax {
		lo, hi := x.At(0, j), x.At(0, j)
		for i := 1; i < rows; i++ {
			v := x.At(i, j)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		p.Min[k] = lo
		p.Max[k] = hi
	}

	p.Fitted = true
	return nil
}

// Transform returns a scaled copy of x. Given the same fitted state and the
// same input it always produces identical output.
func (p *Preprocessor) Transform(x mat.Matrix) (*mat.Dense, error) {
	if !p.Fitted {
		return nil, fmt.Errorf("preprocessor is not fitted")
	}
	rows, cols := x.Dims()
	if cols != len(p.Columns) {
		return nil, fmt.Errorf("matrix has %d columns, preprocessor expects %d", cols, len(p.Columns))
	}

	idx, err := p.scaledIndices()
	if err != nil {
		return nil, err
	}

	out := mat.DenseCopyOf(x)
	for k, j := range idx.standard {
		for i := 0; i < rows; i++ {
			v := 0.0
			if p.Std[k] != 0 {
				v = (x.At(i, j) - p.Mean[k]) / p.Std[k]
			}
			out.Set(i, j, v)
		}
	}
	for k, j := range idx.minMax {
		span := p.Max[k] - p.Min[k]
		for i := 0; i < rows; i++ {
			v := 0.0
			if span != 0 {
				v = (x.At(i, j) - p.Min[k]) / span
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

// Save writes the fitted state as JSON.
func (p *Preprocessor) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// Load reads state written by Save.
func (p *Preprocessor) Load(r io.Reader) error {
	if err := json.NewDecoder(r).Decode(p); err != nil {
		return fmt.Errorf("failed to decode preprocessor: %w", err)
	}
	if _, err := p.scaledIndices(); err != nil {
		return err
	}
	return nil
}
