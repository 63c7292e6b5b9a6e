package main

import (
	"context"
	"errors"
	"os"
	"time"

	"bossfinance/internal/backend"
	"bossfinance/internal/cli"
	"bossfinance/internal/notify"
	"bossfinance/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting bossfin-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(context.Background(), backend.ConfigFromAppConfig(cfg))
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err)
		os.Exit(1)
	}
	if result.Alerts == nil {
		logger.Error("Failed to connect to AMQP broker", "url", cfg.AMQPURL)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Cleanup failed", "error", err)
		}
	})

	settings := notify.NewRepository(result.Prefs)
	alertWorker := worker.NewAlertWorker(result.Alerts, settings)

	logger.Info("Alert worker running",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	if err := alertWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", "error", err)
	}

	cli.WaitForShutdown(ctx, done)
}
