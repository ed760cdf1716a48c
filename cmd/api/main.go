package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"compass.qibla.app/internal/app"
	"compass.qibla.app/internal/appconf"
	"compass.qibla.app/internal/logging"
	"compass.qibla.app/internal/metrics"
	"compass.qibla.app/internal/restapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildApplication loads configuration and wires the logger and metrics registry.
func buildApplication(args []string, logOutput io.Writer, reg prometheus.Registerer) (*app.Application, error) {
	cfg, err := appconf.Load(args, logOutput)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewStructuredLogger(logOutput, level)

	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return &app.Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: collector,
	}, nil
}

func run(ctx context.Context, args []string, logOutput io.Writer) error {
	application, err := buildApplication(args, logOutput, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	api := restapi.NewRestAPI(application)
	defer api.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", application.Config.Port),
		Handler:      api.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(application.Logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logging.LogOperation(application.Logger, "starting server",
			slog.String("addr", srv.Addr),
			slog.String("env", application.Config.Env.String()),
			slog.String("target", application.Config.Target.String()),
			slog.Float64("arrow_offset", application.Config.ArrowOffset))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.LogOperation(application.Logger, "shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(application.Logger, "graceful shutdown failed", err)
		return err
	}
	return nil
}
