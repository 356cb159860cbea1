package stage

import (
	"context"
	"log/slog"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/artifact"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/dataset"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/entity"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/insurance"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/registry"
)

// Evaluation scores the freshly trained bundle against the current production
// bundle on the identical raw test partition with the identical metric (F1).
// Each bundle applies its own preprocessor, so the comparison cannot drift.
type Evaluation struct {
	cfg    entity.EvaluationConfig
	prod   registry.Store
	store  *artifact.Store
	logger *slog.Logger
}

func NewEvaluation(cfg entity.EvaluationConfig, prod registry.Store, store *artifact.Store, logger *slog.Logger) *Evaluation {
	return &Evaluation{cfg: cfg, prod: prod, store: store, logger: logger}
}

func (s *Evaluation) Run(ctx context.Context, ingestion *entity.IngestionArtifact, trainer *entity.TrainerArtifact) (*entity.EvaluationArtifact, error) {
	frame, err := dataset.ReadCSV(ingestion.TestPath)
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}
	records, err := insurance.FromFrame(frame)
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}
	x, err := insurance.Featurize(records)
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}
	y := insurance.Labels(records)

	trained := &ml.Estimator{}
	if err := s.store.Load(trainer.ModelPath, trained); err != nil {
		return nil, &EvaluationError{Err: err}
	}
	trainedPred, err := trained.Predict(x)
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}
	trainedF1, err := ml.F1Score(y, trainedPred)
	if err != nil {
		return nil, &EvaluationError{Err: err}
	}

	// Baseline fetch is best effort: a missing or unreadable production
	// model means "no baseline", never a failed run.
	production := s.fetchBaseline(ctx)

	art := &entity.EvaluationArtifact{
		TrainedF1:   trainedF1,
		HasBaseline: production != nil,
	}

	if production == nil {
		art.Delta = trainedF1
		art.Accepted = trainedF1 >= s.cfg.FirstDeployFloor
	} else {
		prodPred, err := production.Predict(x)
		if err != nil {
			return nil, &EvaluationError{Err: err}
		}
		prodF1, err := ml.F1Score(y, prodPred)
		if err != nil {
			return nil, &EvaluationError{Err: err}
		}
		art.ProductionF1 = prodF1
		art.Delta = trainedF1 - prodF1
		art.Accepted = art.Delta > s.cfg.MinImprovement
	}

	s.logger.Info("model evaluation complete",
		"accepted", art.Accepted,
		"trained_f1", art.TrainedF1,
		"production_f1", art.ProductionF1,
		"delta", art.Delta,
		"has_baseline", art.HasBaseline,
	)
	return art, nil
}

func (s *Evaluation) fetchBaseline(ctx context.Context) *ml.Estimator {
	exists, err := s.prod.Exists(ctx)
	if err != nil {
		s.logger.Warn("could not check for production model, treating as absent", "error", err)
		return nil
	}
	if !exists {
		return nil
	}

	est, err := s.prod.Load(ctx)
	if err != nil {
		s.logger.Warn("could not load production model, treating as absent", "error", err)
		return nil
	}
	return est
}
