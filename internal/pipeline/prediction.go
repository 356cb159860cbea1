package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/insurance"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/registry"
)

// PredictionError wraps failures of the prediction path, including the
// absence of a production model.
type PredictionError struct{ Err error }

func (e *PredictionError) Error() string { return fmt.Sprintf("prediction failed: %v", e.Err) }
func (e *PredictionError) Unwrap() error { return e.Err }

// Predictor scores single records with the production bundle. The bundle is
// fetched once per process lifetime and is read-only afterwards, so
// concurrent predictions share it safely; picking up a newer promotion
// requires a new process.
type Predictor struct {
	prod   registry.Store
	logger *slog.Logger

	mu  sync.Mutex
	est *ml.Estimator
}

func NewPredictor(prod registry.Store, logger *slog.Logger) *Predictor {
	return &Predictor{prod: prod, logger: logger}
}

// Predict returns the predicted label for one raw record.
func (p *Predictor) Predict(ctx context.Context, rec insurance.Record) (int, error) {
	est, err := p.estimator(ctx)
	if err != nil {
		return 0, err
	}

	x, err := insurance.Featurize([]insurance.Record{rec})
	if err != nil {
		return 0, &PredictionError{Err: err}
	}

	pred, err := est.Predict(x)
	if err != nil {
		return 0, &PredictionError{Err: err}
	}
	return pred[0], nil
}

// estimator returns the cached bundle, fetching it on the first successful
// call. Failed fetches are not cached, so a deployment arriving later becomes
// visible without a restart.
func (p *Predictor) estimator(ctx context.Context) (*ml.Estimator, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.est != nil {
		return p.est, nil
	}

	exists, err := p.prod.Exists(ctx)
	if err != nil {
		return nil, &PredictionError{Err: err}
	}
	if !exists {
		return nil, &PredictionError{Err: fmt.Errorf("no production model has been deployed yet")}
	}

	est, err := p.prod.Load(ctx)
	if err != nil {
		return nil, &PredictionError{Err: err}
	}
	p.est = est
	p.logger.Info("production model cached for prediction")
	return p.est, nil
}
