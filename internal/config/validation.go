package config

import (
	"errors"
	"fmt"
	"strings"
)

func (c *Config) Validate() error {
	var errs []error

	if err := c.Mongo.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("mongo: %w", err))
	}

	if err := c.S3.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("s3: %w", err))
	}

	if err := c.Ingestion.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ingestion: %w", err))
	}

	if err := c.Training.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("training: %w", err))
	}

	if err := c.Evaluation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("evaluation: %w", err))
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

func (m *MongoConfig) Validate() error {
	if m.URI == "" {
		return errors.New("uri is required")
	}
	if strings.Contains(m.URI, "${") {
		return errors.New("uri contains an unresolved environment variable")
	}
	if m.Database == "" || m.Collection == "" {
		return errors.New("database and collection are required")
	}
	if m.TimeoutSec <= 0 {
		return fmt.Errorf("timeout_sec must be positive, got %d", m.TimeoutSec)
	}
	return nil
}

func (s *S3Config) Validate() error {
	if s.Bucket == "" {
		return errors.New("bucket is required")
	}
	if s.ModelKey == "" {
		return errors.New("model_key is required")
	}
	return nil
}

func (i *IngestionConfig) Validate() error {
	if i.SplitRatio <= 0 || i.SplitRatio >= 1 {
		return fmt.Errorf("split_ratio must be in (0, 1), got %g", i.SplitRatio)
	}
	return nil
}

func (t *TrainingConfig) Validate() error {
	if t.NEstimators < 1 {
		return fmt.Errorf("n_estimators must be at least 1, got %d", t.NEstimators)
	}
	if t.Criterion != "gini" && t.Criterion != "entropy" {
		return fmt.Errorf("criterion must be gini or entropy, got %q", t.Criterion)
	}
	if t.MinAccuracy < 0 || t.MinAccuracy > 1 {
		return fmt.Errorf("min_accuracy must be in [0, 1], got %g", t.MinAccuracy)
	}
	return nil
}

func (e *EvaluationConfig) Validate() error {
	if e.MinImprovement < 0 {
		return fmt.Errorf("min_improvement must not be negative, got %g", e.MinImprovement)
	}
	if e.FirstDeployFloor < 0 || e.FirstDeployFloor > 1 {
		return fmt.Errorf("first_deploy_floor must be in [0, 1], got %g", e.FirstDeployFloor)
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", s.Port)
	}
	return nil
}

func (l *LoggingConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", l.Level)
	}
	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", l.Format)
	}
	return nil
}
