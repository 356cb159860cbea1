package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/config"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/dataaccess"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/logger"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/pipeline"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/registry"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long:  `Serve the prediction form and the synchronous training trigger.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("server starting", "version", Version, "config", cfgFile)

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

	training := pipeline.NewTraining(cfg, source, prod, log)
	predictor := pipeline.NewPredictor(prod, log)
	srv := server.New(cfg, training, predictor, log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("received signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
