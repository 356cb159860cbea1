package ml

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Estimator is the deployable bundle: a fitted preprocessor paired with a
// fitted forest. It is immutable after construction; promotion replaces the
// whole bundle, never mutates it.
type Estimator struct {
	Preprocessor *Preprocessor `json:"preprocessor"`
	Forest       *RandomForest `json:"forest"`
	TrainedAt    time.Time     `json:"trained_at"`
}

func NewEstimator(p *Preprocessor, f *RandomForest) *Estimator {
	return &Estimator{Preprocessor: p, Forest: f, TrainedAt: time.Now().UTC()}
}

// Predict scores raw (untransformed) feature rows: the bundle applies its own
// preprocessor before the forest, so callers never preprocess.
func (e *Estimator) Predict(x mat.Matrix) ([]int, error) {
	if e.Preprocessor == nil || e.Forest == nil {
		return nil, fmt.Errorf("estimator bundle is incomplete")
	}
	xt, err := e.Preprocessor.Transform(x)
	if err != nil {
		return nil, fmt.Errorf("failed to transform input: %w", err)
	}
	return e.Forest.Predict(xt)
}

// Save writes the bundle as gzipped JSON.
func (e *Estimator) Save(w io.Writer) error {
	gz := gzip.NewWriter(w)
	if err := json.NewEncoder(gz).Encode(e); err != nil {
		gz.Close()
		return fmt.Errorf("failed to encode estimator: %w", err)
	}
	return gz.Close()
}

// Load reads a bundle written by Save.
func (e *Estimator) Load(r io.Reader) error {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("failed to open estimator stream: %w", err)
	}
	defer gz.Close()

	if err := json.NewDecoder(gz).Decode(e); err != nil {
		return fmt.Errorf("failed to decode estimator: %w", err)
	}
	if e.Preprocessor == nil || e.Forest == nil {
		return fmt.Errorf("estimator bundle is incomplete")
	}
	return nil
}
