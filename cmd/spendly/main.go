package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"spendly/internal/amqp"
	"spendly/internal/config"
	apphttp "spendly/internal/http"
	"spendly/internal/log"
	"spendly/internal/services"
	"spendly/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	logger := log.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Store initialized", "backend", cfg.StoreBackend)

	// Budget recompute messaging is optional; without AMQP, budgets are
	// recomputed only through the recompute endpoint.
	var publisher services.RecomputePublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	tokens, err := config.ParseAPITokens(cfg.APITokens)
	if err != nil {
		logger.Error("Failed to parse API tokens", "error", err)
		os.Exit(1)
	}
	if len(tokens) == 0 {
		logger.Warn("No API tokens configured - all requests will be rejected")
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Auth:         apphttp.NewStaticTokenAuthenticator(tokens),
		Transactions: services.NewTransactionService(store, publisher),
		Budgets:      services.NewBudgetService(store, store),
		Investments:  services.NewInvestmentService(store),
		Documents:    services.NewDocumentService(store),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StoreBackend == "memory" {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewSQLiteStore(cfg.SQLiteDBPath)
}
