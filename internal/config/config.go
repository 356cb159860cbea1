package config

import "time"

// Config is the process-wide configuration, resolved once at startup and
// passed by reference into every component constructor. No other package
// reads environment state directly.
type Config struct {
	Mongo      MongoConfig      `yaml:"mongo"`
	S3         S3Config         `yaml:"s3"`
	Artifacts  ArtifactsConfig  `yaml:"artifacts"`
	Ingestion  IngestionConfig  `yaml:"ingestion"`
	Training   TrainingConfig   `yaml:"training"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// MongoConfig holds the document-store connection settings.
type MongoConfig struct {
	// URI is usually supplied via ${MONGODB_URI} substitution.
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// S3Config identifies the object-store location of the production model.
type S3Config struct {
	Region   string `yaml:"region"`
	Bucket   string `yaml:"bucket"`
	ModelKey string `yaml:"model_key"`
	// Endpoint overrides the AWS endpoint (minio, localstack). Empty for AWS.
	Endpoint string `yaml:"endpoint"`
}

// ArtifactsConfig holds local working-directory settings.
type ArtifactsConfig struct {
	RootDir    string `yaml:"root_dir"`
	SchemaPath string `yaml:"schema_path"`
}

// IngestionConfig holds the train/test split parameters.
type IngestionConfig struct {
	// SplitRatio is the test share of the dataset, in (0, 1).
	SplitRatio float64 `yaml:"split_ratio"`
	Seed       int64   `yaml:"seed"`
}

// TrainingConfig holds the forest hyperparameters and the accuracy gate.
type TrainingConfig struct {
	NEstimators     int    `yaml:"n_estimators"`
	MaxDepth        int    `yaml:"max_depth"`
	MinSamplesSplit int    `yaml:"min_samples_split"`
	MinSamplesLeaf  int    `yaml:"min_samples_leaf"`
	Criterion       string `yaml:"criterion"`
	Seed            int64  `yaml:"seed"`
	// MinAccuracy is the test accuracy a freshly trained model must reach;
	// below it the run fails before evaluation.
	MinAccuracy float64 `yaml:"min_accuracy"`
}

// EvaluationConfig holds the promotion decision parameters.
type EvaluationConfig struct {
	// MinImprovement is the F1 delta a new model must exceed over the
	// production model to be accepted.
	MinImprovement float64 `yaml:"min_improvement"`
	// FirstDeployFloor is the F1 a model must reach to be accepted when no
	// production model exists. Zero keeps the auto-accept behavior.
	FirstDeployFloor float64 `yaml:"first_deploy_floor"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (m *MongoConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutSec) * time.Second
}
