// Package cli provides the initialization shared by cmd/tracker and
// cmd/tracker-cli and the tracker-cli command runner.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"tracker/internal/backend"
	"tracker/internal/config"
	applog "tracker/internal/log"
	"tracker/internal/services"
	"tracker/internal/store"
)

// SetupLogger creates the application logger at level, writing to out, and
// makes it the slog default. An unknown level falls back to info.
func SetupLogger(out io.Writer, level, component string) *applog.Logger {
	lvl, err := applog.ParseLevel(level)
	logger := applog.New(applog.Config{Level: lvl, Component: component, Output: out})
	if err != nil {
		logger.Warn("Unknown log level, using info", "level", level)
	}
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// Ledger bundles the service with what it needs at shutdown.
type Ledger struct {
	Service *services.LedgerService
	Backend *backend.BackendResult
	closers []backend.CleanupFunc
}

// Close releases the notifier and the storage backend.
func (l *Ledger) Close() error {
	var errs []error
	for _, c := range l.closers {
		if c != nil {
			errs = append(errs, c())
		}
	}
	errs = append(errs, l.Backend.Close())
	return errors.Join(errs...)
}

// OpenLedger creates the configured backend and optional AMQP notifier and
// loads the ledger from it.
func OpenLedger(ctx context.Context, logger *applog.Logger, cfg *config.Config) (*Ledger, error) {
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}

	storageLogger := logger.WithComponent(applog.ComponentStorage).Logger
	res, err := backend.NewFactory(storageLogger).CreateBackend(ctx, bc)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	notifier, closeNotifier := backend.NewNotifier(logger.WithComponent(applog.ComponentAMQP).Logger, bc)
	svc := services.NewLedgerService(ctx, store.NewAdapter(res.Backend, cfg.StorageKey), notifier)

	return &Ledger{
		Service: svc,
		Backend: res,
		closers: []backend.CleanupFunc{closeNotifier},
	}, nil
}
