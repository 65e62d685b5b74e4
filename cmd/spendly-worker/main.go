package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spendly/internal/amqp"
	"spendly/internal/config"
	"spendly/internal/log"
	"spendly/internal/services"
	"spendly/internal/storage"
	"spendly/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.Setup(cfg.LogLevel)

	logger.Info("Starting spendly-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite store", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer store.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	budgetService := services.NewBudgetService(store, store)
	recomputeWorker := worker.NewRecomputeWorker(store, budgetService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Consuming budget recompute messages", "queue", cfg.AMQPQueue)
	if err := amqpClient.ConsumeBudgetRecompute(ctx, recomputeWorker.HandleRecomputeMessage); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
