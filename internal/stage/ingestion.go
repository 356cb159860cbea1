// Package stage implements the six pipeline components. Every stage takes
// its configuration and the previous stage's artifact, performs its work
// synchronously, and emits an artifact only on success.
package stage

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/dataaccess"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/entity"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/insurance"
)

// Ingestion pulls the full collection from the document store, snapshots it,
// and writes seeded train/test partitions.
type Ingestion struct {
	source dataaccess.Source
	cfg    entity.IngestionConfig
	logger *slog.Logger
}

func NewIngestion(source dataaccess.Source, cfg entity.IngestionConfig, logger *slog.Logger) *Ingestion {
	return &Ingestion{source: source, cfg: cfg, logger: logger}
}

// Run fails with an IngestionError when the store is unreachable or the
// collection is empty; both are fatal to the run, no retry.
func (s *Ingestion) Run(ctx context.Context) (*entity.IngestionArtifact, error) {
	records, err := s.source.FetchAll(ctx)
	if err != nil {
		return nil, &IngestionError{Err: err}
	}
	if len(records) == 0 {
		return nil, &IngestionError{Err: errors.New("source collection is empty")}
	}

	frame := insurance.ToFrame(records)
	if err := frame.WriteCSV(s.cfg.FeatureStorePath); err != nil {
		return nil, &IngestionError{Err: err}
	}

	train, test := frame.Split(s.cfg.SplitRatio, s.cfg.Seed)
	if err := train.WriteCSV(s.cfg.TrainPath); err != nil {
		return nil, &IngestionError{Err: err}
	}
	if err := test.WriteCSV(s.cfg.TestPath); err != nil {
		return nil, &IngestionError{Err: err}
	}

	s.logger.Info("data ingestion complete",
		"rows", frame.NumRows(),
		"train_rows", train.NumRows(),
		"test_rows", test.NumRows(),
	)

	return &entity.IngestionArtifact{
		FeatureStorePath: s.cfg.FeatureStorePath,
		TrainPath:        s.cfg.TrainPath,
		TestPath:         s.cfg.TestPath,
		TotalRows:        frame.NumRows(),
		TrainRows:        train.NumRows(),
		TestRows:         test.NumRows(),
	}, nil
}
