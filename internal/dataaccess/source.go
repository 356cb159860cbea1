// Package dataaccess pulls vehicle-insurance records out of the document
// store. Stages depend on the Source interface so tests can substitute an
// in-memory implementation.
package dataaccess

import (
	"context"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/insurance"
)

// Source yields every record of the configured collection.
type Source interface {
	FetchAll(ctx context.Context) ([]insurance.Record, error)
}
