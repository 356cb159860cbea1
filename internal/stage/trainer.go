package stage

import (
	"fmt"
	"log/slog"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/artifact"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/entity"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
)

// Trainer fits the random forest on the transformed training partition,
// scores it on the transformed test partition, and persists the combined
// estimator bundle. A model below the accuracy gate never leaves this stage.
type Trainer struct {
	cfg    entity.TrainerConfig
	store  *artifact.Store
	logger *slog.Logger
}

func NewTrainer(cfg entity.TrainerConfig, store *artifact.Store, logger *slog.Logger) *Trainer {
	return &Trainer{cfg: cfg, store: store, logger: logger}
}

func (s *Trainer) Run(transformation *entity.TransformationArtifact) (*entity.TrainerArtifact, error) {
	var train, test ml.LabeledArray
	if err := s.store.Load(transformation.TrainArrayPath, &train); err != nil {
		return nil, &ModelTrainerError{Err: err}
	}
	if err := s.store.Load(transformation.TestArrayPath, &test); err != nil {
		return nil, &ModelTrainerError{Err: err}
	}

	forest := ml.NewRandomForest(s.cfg.Forest)
	if err := forest.Fit(train.X, train.Y); err != nil {
		return nil, &ModelTrainerError{Err: err}
	}

	pred, err := forest.Predict(test.X)
	if err != nil {
		return nil, &ModelTrainerError{Err: err}
	}
	metrics, err := ml.Evaluate(test.Y, pred)
	if err != nil {
		return nil, &ModelTrainerError{Err: err}
	}

	s.logger.Info("model training complete",
		"accuracy", metrics.Accuracy,
		"f1", metrics.F1,
		"precision", metrics.Precision,
		"recall", metrics.Recall,
	)

	if metrics.Accuracy < s.cfg.MinAccuracy {
		return nil, &ModelTrainerError{Err: fmt.Errorf(
			"test accuracy %.4f is below the required minimum %.4f",
			metrics.Accuracy, s.cfg.MinAccuracy,
		)}
	}

	pre := &ml.Preprocessor{}
	if err := s.store.Load(transformation.PreprocessorPath, pre); err != nil {
		return nil, &ModelTrainerError{Err: err}
	}

	est := ml.NewEstimator(pre, forest)
	if err := s.store.Save(s.cfg.ModelPath, est); err != nil {
		return nil, &ModelTrainerError{Err: err}
	}

	return &entity.TrainerArtifact{
		ModelPath: s.cfg.ModelPath,
		Metrics:   metrics,
	}, nil
}
