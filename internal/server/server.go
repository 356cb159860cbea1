// Package server exposes the web surface: a form page for single-record
// predictions and a trigger that runs the training pipeline synchronously.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mohityadav09/vehicle-insurance-mlops/internal/config"
	"github.com/mohityadav09/vehicle-insurance-mlops/internal/pipeline"
)

type Server struct {
	echo      *echo.Echo
	cfg       *config.Config
	training  *pipeline.Training
	predictor *pipeline.Predictor
	logger    *slog.Logger
}

func New(cfg *config.Config, training *pipeline.Training, predictor *pipeline.Predictor, logger *slog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	s := &Server{
		echo:      e,
		cfg:       cfg,
		training:  training,
		predictor: predictor,
		logger:    logger,
	}

	e.GET("/", s.handleForm)
	e.POST("/predict", s.handlePredict)
	e.POST("/train", s.handleTrain)
	e.GET("/healthz", s.handleHealth)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info("server starting", "addr", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server shutting down")
	return s.echo.Shutdown(ctx)
}
