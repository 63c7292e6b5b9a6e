package backend

import (
	"context"
	"fmt"
	"log/slog"

	"bossfinance/internal/amqp"
	"bossfinance/internal/config"
	"bossfinance/internal/prefs"
	"bossfinance/internal/prefs/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// ConfigFromAppConfig converts application config to backend config
func ConfigFromAppConfig(appConfig *config.Config) Config {
	return Config{
		Type:         Type(appConfig.DataBackend),
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(cfg)
	case MemoryBackend:
		return f.createMemoryBackend(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(cfg Config) (*Result, error) {
	store, err := prefs.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}

	alerts := f.createAMQPClient(cfg)

	f.logger.Info("Initialized SQLite backend",
		"db_path", cfg.SQLiteDBPath,
		"amqp_enabled", alerts != nil)

	return &Result{
		Prefs:   store,
		Alerts:  alerts,
		Cleanup: cleanup(store, alerts),
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(cfg Config) (*Result, error) {
	store := memory.New()
	alerts := f.createAMQPClient(cfg)

	f.logger.Info("Initialized memory backend", "amqp_enabled", alerts != nil)

	return &Result{
		Prefs:   store,
		Alerts:  alerts,
		Cleanup: cleanup(store, alerts),
	}, nil
}

// createAMQPClient connects to the broker when one is configured.
// Alerts are optional: a failed connection is a warning, not an error.
func (f *DefaultFactory) createAMQPClient(cfg Config) *amqp.Client {
	if cfg.AMQPURL == "" {
		return nil
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without alerts", "error", err)
		return nil
	}

	f.logger.Info("Initialized AMQP client",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)
	return client
}

func cleanup(store prefs.Store, alerts *amqp.Client) CleanupFunc {
	return func() error {
		var errs []error
		if alerts != nil {
			if err := alerts.Close(); err != nil {
				errs = append(errs, fmt.Errorf("amqp: %w", err))
			}
		}
		if err := store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("prefs: %w", err))
		}
		if len(errs) > 0 {
			return fmt.Errorf("close backend: %v", errs)
		}
		return nil
	}
}
