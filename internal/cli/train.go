package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/config"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/dataaccess"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/logger"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/pipeline"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/registry"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Run the training pipeline once",
	Long: `Run ingestion, validation, transformation, training, evaluation and
push in order, then print the terminal outcome.`,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("training run starting", "version", Version, "config", cfgFile)

	ctx := context.Background()

	source, err := dataaccess.NewMongoSource(ctx, cfg.Mongo, log)
	if err != nil {
		return err
	}
	defer source.Close(ctx)

	prod, err := registry.NewS3Store(ctx, cfg.S3, log)
	if err != nil {
		return err
	}

	result, err := pipeline.NewTraining(cfg, source, prod, log).Run(ctx)
	if err != nil {
		return err
	}

	switch {
	case result.Pushed:
		fmt.Printf("run %s: model accepted (F1 delta %+.4f) and promoted to production\n", result.RunID, result.Delta)
	default:
		fmt.Printf("run %s: model rejected (F1 delta %+.4f), production unchanged\n", result.RunID, result.Delta)
	}
	return nil
}
