// Package main is the entry point for the lunisolar calendar API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/junyi-hu/lunisolar-api/internal/api"
	"github.com/junyi-hu/lunisolar-api/internal/astro"
	"github.com/junyi-hu/lunisolar-api/internal/config"
	"github.com/junyi-hu/lunisolar-api/internal/database"
	"github.com/junyi-hu/lunisolar-api/internal/events"
	"github.com/junyi-hu/lunisolar-api/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup structured logging
	log := logger.Setup(cfg)

	log.Info("starting lunisolar API",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.DatabasePath),
		slog.String("log_level", cfg.LogLevel),
	)

	// Open the event cache and bring the schema up to date
	db, err := database.Open(database.DefaultConfig(cfg.DatabasePath), log)
	if err != nil {
		log.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		log.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Event source: built-in ephemeris behind the SQLite cache
	source := events.NewCachingSource(db, astro.MeeusOracle{}, log)

	metrics := api.NewMetrics()
	handlers := api.NewHandlers(db, source, source, cfg, log, metrics)
	router := api.SetupRoutes(handlers, cfg, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("stopped")
}
