// Package entity defines the per-stage configuration and artifact objects the
// pipeline threads between stages. Configurations are resolved once at run
// start; artifacts are emitted only by stages that completed without error
// and are read-only downstream.
package entity

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/config"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
)

// RunConfig scopes one pipeline execution: a unique run identifier plus every
// stage's resolved parameters and file paths under the run directory.
type RunConfig struct {
	RunID     string
	StartedAt time.Time
	Dir       string

	Ingestion      IngestionConfig
	Validation     ValidationConfig
	Transformation TransformationConfig
	Trainer        TrainerConfig
	Evaluation     EvaluationConfig
	Pusher         PusherConfig
}

// IngestionConfig parameterizes the data-ingestion stage.
type IngestionConfig struct {
	Collection       string
	FeatureStorePath string
	TrainPath        string
	TestPath         string

	// SplitRatio is the test share of the dataset.
	SplitRatio float64
	Seed       int64
}

// ValidationConfig parameterizes the data-validation stage.
type ValidationConfig struct {
	SchemaPath string
	ReportPath string
}

// TransformationConfig parameterizes the data-transformation stage.
type TransformationConfig struct {
	PreprocessorPath string
	TrainArrayPath   string
	TestArrayPath    string

	// Seed drives minority-class oversampling.
	Seed int64
}

// TrainerConfig parameterizes the model-trainer stage.
type TrainerConfig struct {
	ModelPath string
	Forest    ml.ForestConfig

	// MinAccuracy is the test accuracy gate; below it the run fails.
	MinAccuracy float64
}

// EvaluationConfig parameterizes the promotion decision.
type EvaluationConfig struct {
	MinImprovement   float64
	FirstDeployFloor float64
}

// PusherConfig identifies the production slot in the object store.
type PusherConfig struct {
	Bucket string
	Key    string
}

// NewRunConfig resolves a run-scoped configuration from the process config.
// The run identifier combines a timestamp with a random suffix so concurrent
// runs never collide on the working directory.
func NewRunConfig(cfg *config.Config) *RunConfig {
	now := time.Now().UTC()
	runID := fmt.Sprintf("%s-%s", now.Format("20060102T150405"), uuid.NewString()[:8])
	dir := filepath.Join(cfg.Artifacts.RootDir, runID)

	return &RunConfig{
		RunID:     runID,
		StartedAt: now,
		Dir:       dir,
		Ingestion: IngestionConfig{
			Collection:       cfg.Mongo.Collection,
			FeatureStorePath: filepath.Join(dir, "ingestion", "feature_store.csv"),
			TrainPath:        filepath.Join(dir, "ingestion", "train.csv"),
			TestPath:         filepath.Join(dir, "ingestion", "test.csv"),
			SplitRatio:       cfg.Ingestion.SplitRatio,
			Seed:             cfg.Ingestion.Seed,
		},
		Validation: ValidationConfig{
			SchemaPath: cfg.Artifacts.SchemaPath,
			ReportPath: filepath.Join(dir, "validation", "report.json"),
		},
		Transformation: TransformationConfig{
			PreprocessorPath: filepath.Join(dir, "transformation", "preprocessor.json"),
			TrainArrayPath:   filepath.Join(dir, "transformation", "train.csv"),
			TestArrayPath:    filepath.Join(dir, "transformation", "test.csv"),
			Seed:             cfg.Ingestion.Seed,
		},
		Trainer: TrainerConfig{
			ModelPath: filepath.Join(dir, "trainer", "model.json.gz"),
			Forest: ml.ForestConfig{
				NEstimators:     cfg.Training.NEstimators,
				MaxDepth:        cfg.Training.MaxDepth,
				MinSamplesSplit: cfg.Training.MinSamplesSplit,
				MinSamplesLeaf:  cfg.Training.MinSamplesLeaf,
				Criterion:       cfg.Training.Criterion,
				Seed:            cfg.Training.Seed,
			},
			MinAccuracy: cfg.Training.MinAccuracy,
		},
		Evaluation: EvaluationConfig{
			MinImprovement:   cfg.Evaluation.MinImprovement,
			FirstDeployFloor: cfg.Evaluation.FirstDeployFloor,
		},
		Pusher: PusherConfig{
			Bucket: cfg.S3.Bucket,
			Key:    cfg.S3.ModelKey,
		},
	}
}
