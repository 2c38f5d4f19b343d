package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/comms"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/config"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/notify"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/observability/metrics"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.DatabaseURL == "" {
		logger.Error("comms worker requires DATABASE_URL")
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := comms.NewPostgresStore(pool)

	emailSender := notify.NewEmailSenderFromConfig(ctx, cfg, logger)
	smsSender := notify.NewSMSSenderFromConfig(cfg, logger)

	sweeper := comms.NewSweeper(store, smsSender, notify.EmailAdapter{Sender: emailSender}, logger).
		WithBatchSize(cfg.SweepBatchSize).
		WithMetrics(metrics.NewCommsMetrics(nil))

	logger.Info("comms worker started",
		"interval", cfg.SweepInterval.String(),
		"batch_size", cfg.SweepBatchSize,
	)
	go sweeper.Run(ctx, cfg.SweepInterval)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("comms worker shutting down")
	cancel()
	time.Sleep(2 * time.Second)
}
