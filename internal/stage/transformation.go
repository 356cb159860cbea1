package stage

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/artifact"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/dataset"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/entity"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/insurance"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/schema"
)

// Transformation engineers features from both partitions, fits the
// preprocessor on the training partition only, balances the training classes
// by oversampling, and persists the fitted preprocessor plus both
// transformed arrays.
type Transformation struct {
	cfg        entity.TransformationConfig
	schemaPath string
	store      *artifact.Store
	logger     *slog.Logger
}

func NewTransformation(cfg entity.TransformationConfig, schemaPath string, store *artifact.Store, logger *slog.Logger) *Transformation {
	return &Transformation{cfg: cfg, schemaPath: schemaPath, store: store, logger: logger}
}

func (s *Transformation) Run(ingestion *entity.IngestionArtifact) (*entity.TransformationArtifact, error) {
	sc, err := schema.Load(s.schemaPath)
	if err != nil {
		return nil, &TransformationError{Err: err}
	}

	trainX, trainY, err := loadFeatures(ingestion.TrainPath)
	if err != nil {
		return nil, &TransformationError{Err: fmt.Errorf("train partition: %w", err)}
	}
	testX, testY, err := loadFeatures(ingestion.TestPath)
	if err != nil {
		return nil, &TransformationError{Err: fmt.Errorf("test partition: %w", err)}
	}

	pre, err := ml.NewPreprocessor(insurance.FeatureColumns(), sc.NumFeatures, sc.MMColumns)
	if err != nil {
		return nil, &TransformationError{Err: err}
	}
	if err := pre.Fit(trainX); err != nil {
		return nil, &TransformationError{Err: err}
	}

	trainT, err := pre.Transform(trainX)
	if err != nil {
		return nil, &TransformationError{Err: err}
	}
	testT, err := pre.Transform(testX)
	if err != nil {
		return nil, &TransformationError{Err: err}
	}

	// Only the training partition is rebalanced; the test partition must
	// stay identical across model comparisons.
	trainT, trainY = ml.OversampleMinority(trainT, trainY, s.cfg.Seed)

	if err := s.store.Save(s.cfg.PreprocessorPath, pre); err != nil {
		return nil, &TransformationError{Err: err}
	}
	if err := s.store.Save(s.cfg.TrainArrayPath, &ml.LabeledArray{X: trainT, Y: trainY}); err != nil {
		return nil, &TransformationError{Err: err}
	}
	if err := s.store.Save(s.cfg.TestArrayPath, &ml.LabeledArray{X: testT, Y: testY}); err != nil {
		return nil, &TransformationError{Err: err}
	}

	trainRows, _ := trainT.Dims()
	testRows, _ := testT.Dims()
	s.logger.Info("data transformation complete",
		"train_rows", trainRows,
		"test_rows", testRows,
		"features", len(insurance.FeatureColumns()),
	)

	return &entity.TransformationArtifact{
		PreprocessorPath: s.cfg.PreprocessorPath,
		TrainArrayPath:   s.cfg.TrainArrayPath,
		TestArrayPath:    s.cfg.TestArrayPath,
	}, nil
}

// loadFeatures reads a partition CSV, decodes it into records (failing when a
// schema column is absent), and engineers the feature matrix.
func loadFeatures(path string) (x *mat.Dense, y []int, err error) {
	frame, err := dataset.ReadCSV(path)
	if err != nil {
		return nil, nil, err
	}
	records, err := insurance.FromFrame(frame)
	if err != nil {
		return nil, nil, err
	}
	x, err = insurance.Featurize(records)
	if err != nil {
		return nil, nil, err
	}
	return x, insurance.Labels(records), nil
}
