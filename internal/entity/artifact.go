package entity

import "github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"

// IngestionArtifact records where the ingested partitions landed and how the
// rows were distributed.
type IngestionArtifact struct {
	FeatureStorePath string `json:"feature_store_path"`
	TrainPath        string `json:"train_path"`
	TestPath         string `json:"test_path"`
	TotalRows        int    `json:"total_rows"`
	TrainRows        int    `json:"train_rows"`
	TestRows         int    `json:"test_rows"`
}

// ValidationArtifact carries the schema-check outcome. An invalid result is
// not an error; the orchestrator halts the run on it.
type ValidationArtifact struct {
	Valid      bool   `json:"valid"`
	Message    string `json:"message"`
	ReportPath string `json:"report_path"`
}

// TransformationArtifact references the fitted preprocessor and both
// transformed partitions.
type TransformationArtifact struct {
	PreprocessorPath string `json:"preprocessor_path"`
	TrainArrayPath   string `json:"train_array_path"`
	TestArrayPath    string `json:"test_array_path"`
}

// TrainerArtifact references the persisted estimator bundle and its test
// metrics.
type TrainerArtifact struct {
	ModelPath string     `json:"model_path"`
	Metrics   ml.Metrics `json:"metrics"`
}

// EvaluationArtifact carries the promotion decision. Delta is the new model's
// F1 minus the production model's (zero baseline when none exists).
type EvaluationArtifact struct {
	Accepted     bool    `json:"accepted"`
	Delta        float64 `json:"delta"`
	TrainedF1    float64 `json:"trained_f1"`
	ProductionF1 float64 `json:"production_f1"`
	HasBaseline  bool    `json:"has_baseline"`
}

// PusherArtifact records whether the bundle was promoted and where.
type PusherArtifact struct {
	Pushed bool   `json:"pushed"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}
