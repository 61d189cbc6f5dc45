package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pharmakpi/internal/config"
	"pharmakpi/internal/dataset"
	apphttp "pharmakpi/internal/http"
	"pharmakpi/internal/log"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	var loader dataset.Loader
	switch cfg.DataBackend {
	case "sqlite":
		loader = dataset.NewSQLiteLoader(cfg.SQLiteDBPath)
	default:
		loader = dataset.NewCSVLoader(cfg.DataDir)
	}

	store := dataset.NewStore(loader)
	counts, err := store.Reload(context.Background())
	if err != nil {
		logger.Error("Failed to load dataset",
			log.FieldError, err,
			log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	logger.Info("Dataset loaded",
		log.FieldBackend, cfg.DataBackend,
		log.FieldCategories, counts.Categories,
		log.FieldProducts, counts.Products,
		log.FieldSales, counts.Sales)

	srv := apphttp.NewServer(cfg, store, logger)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting pharmakpi server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
