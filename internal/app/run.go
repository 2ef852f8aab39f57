package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ferdiebergado/credkit/internal/config"
	"github.com/ferdiebergado/credkit/internal/middleware"
	"github.com/ferdiebergado/credkit/internal/pkg/logging"
	"github.com/ferdiebergado/credkit/internal/platform/db"
	"github.com/ferdiebergado/goexpress"
	"github.com/ferdiebergado/gopherkit/env"
)

const (
	envFile    = ".env"
	configFile = "config.json"
)

// LoadConfig reads .env outside production, then the json config.
func LoadConfig(cfgFile string) (*config.Config, error) {
	if os.Getenv("ENV") != "production" {
		if err := env.Load(envFile); err != nil {
			slog.Warn("No env file loaded.", "file", envFile, "reason", err)
		}
	}

	return config.Load(cfgFile)
}

// Middlewares returns the global middleware chain, outermost first.
func Middlewares(recorder MetricsRecorder) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.InjectWriter,
		goexpress.RecoverFromPanic,
		middleware.LogRequest,
		middleware.Instrument(recorder),
	}
}

func Run(ctx context.Context) error {
	slog.Info("Initializing...")

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	logging.SetupLogger(cfg.App.Env, cfg.App.LogLevel, os.Stdout)

	dbConn, err := db.NewConnection(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	provider, err := newProvider(cfg, dbConn)
	if err != nil {
		return err
	}

	api, err := New(cfg, provider, Middlewares(provider.Recorder))
	if err != nil {
		return err
	}

	if err := api.Start(ctx); err != nil {
		if shutdownErr := api.Shutdown(); shutdownErr != nil {
			slog.Error("Shutdown failed.", "reason", shutdownErr)
		}
		return fmt.Errorf("start server: %w", err)
	}

	return api.Shutdown()
}
