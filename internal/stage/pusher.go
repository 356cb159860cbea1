package stage

import (
	"context"
	"log/slog"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/artifact"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/entity"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/ml"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/registry"
)

// Pusher promotes an accepted bundle to the production slot in the object
// store. A rejected evaluation makes this stage a no-op.
type Pusher struct {
	cfg    entity.PusherConfig
	prod   registry.Store
	store  *artifact.Store
	logger *slog.Logger
}

func NewPusher(cfg entity.PusherConfig, prod registry.Store, store *artifact.Store, logger *slog.Logger) *Pusher {
	return &Pusher{cfg: cfg, prod: prod, store: store, logger: logger}
}

func (s *Pusher) Run(ctx context.Context, evaluation *entity.EvaluationArtifact, trainer *entity.TrainerArtifact) (*entity.PusherArtifact, error) {
	if !evaluation.Accepted {
		s.logger.Info("model rejected by evaluation, production unchanged")
		return &entity.PusherArtifact{Pushed: false, Bucket: s.cfg.Bucket, Key: s.cfg.Key}, nil
	}

	est := &ml.Estimator{}
	if err := s.store.Load(trainer.ModelPath, est); err != nil {
		return nil, &PushError{Err: err}
	}

	if err := s.prod.Save(ctx, est); err != nil {
		return nil, &PushError{Err: err}
	}

	s.logger.Info("model promoted to production", "bucket", s.cfg.Bucket, "key", s.cfg.Key)
	return &entity.PusherArtifact{Pushed: true, Bucket: s.cfg.Bucket, Key: s.cfg.Key}, nil
}
