package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecpm-app/ecpm-backend/internal/api"
	"github.com/ecpm-app/ecpm-backend/internal/application/service"
	"github.com/ecpm-app/ecpm-backend/internal/domain/profit"
	"github.com/ecpm-app/ecpm-backend/internal/infrastructure/config"
	"github.com/ecpm-app/ecpm-backend/internal/infrastructure/storage"
	"github.com/ecpm-app/ecpm-backend/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (falls back to environment)")
	port := flag.Int("port", 0, "Override the configured listen port")
	verbose := flag.Bool("verbose", false, "Verbose output")
	flag.Parse()

	cfg := config.LoadOrEnv()
	if *configPath != "" {
		cfg = config.LoadOrEnvWithPath(*configPath)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	loggingCfg := cfg.Observability.Logging
	if *verbose {
		loggingCfg.Level = "debug"
	}
	logger := observability.NewLogger(loggingCfg)

	if err := run(cfg, logger); err != nil {
		logger.Error("fatal", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	opts := profit.Options{IncludeCODInReturnLoss: cfg.Engine.IncludeCODInReturnLoss}
	dayService := service.NewDayService(store, logger, opts, cfg.Engine.DefaultDollarRate)

	apiCfg := api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	server := api.NewServer(apiCfg, store, dayService, logger)

	// Handle graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	// Start server (blocks until shutdown)
	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
