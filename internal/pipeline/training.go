// Package pipeline sequences the stages of one training run and serves
// predictions from the production model.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shirou/gopsutil/v4/mem"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/artifact"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/config"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/dataaccess"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/entity"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/registry"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/stage"
)

// RunResult is the terminal outcome of one training run. A rejected
// evaluation is a successful run whose outcome is "no change to production".
type RunResult struct {
	RunID    string        `json:"run_id"`
	Accepted bool          `json:"accepted"`
	Pushed   bool          `json:"pushed"`
	Delta    float64       `json:"delta"`
	Metrics  ml.Metrics    `json:"metrics"`
	Duration time.Duration `json:"duration"`

	// StageDurations holds how long each stage took, keyed by stage name.
	StageDurations map[string]time.Duration `json:"stage_durations"`

	// MemoryUsedPercent is a host snapshot taken when the run finishes.
	MemoryUsedPercent float64 `json:"memory_used_percent"`
}

// Training runs the stages in strict order, threading artifacts forward and
// halting on the first fatal stage. There is no retry or resume; a failed
// run restarts from ingestion.
type Training struct {
	cfg    *config.Config
	source dataaccess.Source
	prod   registry.Store
	logger *slog.Logger
}

func NewTraining(cfg *config.Config, source dataaccess.Source, prod registry.Store, logger *slog.Logger) *Training {
	return &Training{cfg: cfg, source: source, prod: prod, logger: logger}
}

// Run executes ingest, validate, transform, train, evaluate and push for a
// fresh run identifier. Stage failures come back wrapped with the stage name.
func (t *Training) Run(ctx context.Context) (*RunResult, error) {
	run := entity.NewRunConfig(t.cfg)
	store := artifact.NewStore(t.logger)
	logger := t.logger.With("run_id", run.RunID)
	started := time.Now()
	durations := make(map[string]time.Duration)
	timed := func(name string) func() {
		begin := time.Now()
		return func() { durations[name] = time.Since(begin) }
	}

	logger.Info("training pipeline started", "dir", run.Dir)

	done := timed("ingestion")
	ingestionArt, err := stage.NewIngestion(t.source, run.Ingestion, logger).Run(ctx)
	done()
	if err != nil {
		return nil, fmt.Errorf("ingestion stage: %w", err)
	}

	done = timed("validation")
	validationArt, err := stage.NewValidation(run.Validation, store, logger).Run(ingestionArt)
	done()
	if err != nil {
		return nil, fmt.Errorf("validation stage: %w", err)
	}
	if !validationArt.Valid {
		return nil, fmt.Errorf("validation stage: %w",
			&stage.ValidationError{Err: fmt.Errorf("ingested data does not match schema: %s", validationArt.Message)})
	}

	done = timed("transformation")
	transformationArt, err := stage.NewTransformation(run.Transformation, run.Validation.SchemaPath, store, logger).Run(ingestionArt)
	done()
	if err != nil {
		return nil, fmt.Errorf("transformation stage: %w", err)
	}

	done = timed("trainer")
	trainerArt, err := stage.NewTrainer(run.Trainer, store, logger).Run(transformationArt)
	done()
	if err != nil {
		return nil, fmt.Errorf("trainer stage: %w", err)
	}

	done = timed("evaluation")
	evaluationArt, err := stage.NewEvaluation(run.Evaluation, t.prod, store, logger).Run(ctx, ingestionArt, trainerArt)
	done()
	if err != nil {
		return nil, fmt.Errorf("evaluation stage: %w", err)
	}

	done = timed("pusher")
	pusherArt, err := stage.NewPusher(run.Pusher, t.prod, store, logger).Run(ctx, evaluationArt, trainerArt)
	done()
	if err != nil {
		return nil, fmt.Errorf("pusher stage: %w", err)
	}

	result := &RunResult{
		RunID:          run.RunID,
		Accepted:       evaluationArt.Accepted,
		Pushed:         pusherArt.Pushed,
		Delta:          evaluationArt.Delta,
		Metrics:        trainerArt.Metrics,
		Duration:       time.Since(started),
		StageDurations: durations,
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		result.MemoryUsedPercent = vm.UsedPercent
	}

	logger.Info("training pipeline finished",
		"accepted", result.Accepted,
		"pushed", result.Pushed,
		"delta", result.Delta,
		"duration", result.Duration,
		"memory_used_percent", result.MemoryUsedPercent,
	)
	return result, nil
}
