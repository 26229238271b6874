package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/dashboard"
	"fintrack/internal/events"
	apphttp "fintrack/internal/http"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
	"fintrack/internal/store"
	"fintrack/internal/store/fixture"
	"fintrack/internal/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	provider, err := newProvider(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize data provider: %w", err)
	}

	bus, err := newBus(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize event bus: %w", err)
	}

	ledgerSvc := ledger.NewService(provider, bus)
	dashboardSvc := dashboard.NewService(provider, bus, dashboard.Options{
		CacheSize: cfg.CacheSize,
		CacheTTL:  cfg.CacheTTL,
	})
	defer dashboardSvc.Close()
	defer ledgerSvc.Close()

	janitor := cache.NewJanitor(dashboardSvc.Cache())
	janitor.Start(cfg.SweepInterval)
	defer janitor.Stop()

	server := apphttp.NewServer(cfg.Port, ledgerSvc, dashboardSvc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	logger.Info("Server started",
		"port", cfg.Port,
		"provider", cfg.DataProvider,
		"amqp", cfg.AMQPURL != "")

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

func newProvider(cfg *config.Config, logger *log.Logger) (store.Provider, error) {
	switch cfg.DataProvider {
	case "sqlite":
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Initialized sqlite provider", "path", cfg.SQLiteDBPath)
		return repo, nil
	default:
		logger.Info("Initialized fixture provider")
		return fixture.NewSeeded(time.Now()), nil
	}
}

func newBus(cfg *config.Config, logger *log.Logger) (events.Bus, error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP not configured, using in-process event bus")
		return events.NewMemoryBus(), nil
	}

	bus, err := events.NewAMQPBus(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to AMQP event bus", "exchange", cfg.AMQPExchange)
	return bus, nil
}
