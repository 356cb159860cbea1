package config

func Default() *Config {
	return &Config{
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "insurance",
			Collection: "policies",
			TimeoutSec: 10,
		},
		S3: S3Config{
			Region:   "us-east-1",
			Bucket:   "vehicle-insurance-models",
			ModelKey: "model-registry/model.json.gz",
		},
		Artifacts: ArtifactsConfig{
			RootDir:    "artifacts",
			SchemaPath: "configs/schema.yaml",
		},
		Ingestion: IngestionConfig{
			SplitRatio: 0.25,
			Seed:       22,
		},
		Training: TrainingConfig{
			NEstimators:     101,
			MaxDepth:        10,
			MinSamplesSplit: 2,
			MinSamplesLeaf:  1,
			Criterion:       "gini",
			Seed:            101,
			MinAccuracy:     0.6,
		},
		Evaluation: EvaluationConfig{
			MinImprovement:   0.02,
			FirstDeployFloor: 0,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
