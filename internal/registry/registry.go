// Package registry holds the production estimator bundle in the object
// store. Exactly one bundle is production at a time, identified by a
// well-known bucket and key; promotion overwrites it in a single transfer.
package registry

import (
	"context"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
)

// Store is the production-model slot. Evaluation, pushing and prediction
// depend on this interface; tests substitute an in-memory implementation.
type Store interface {
	// Exists reports whether a production bundle is present.
	Exists(ctx context.Context) (bool, error)

	// Load fetches the production bundle.
	Load(ctx context.Context) (*ml.Estimator, error)

	// Save uploads a bundle to the production slot, overwriting any
	// existing one. Readers never observe a partial bundle.
	Save(ctx context.Context, est *ml.Estimator) error
}
