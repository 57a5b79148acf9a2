// Package main is the entry point for the tutoring center API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tutorcenter/internal/app"
	"tutorcenter/internal/config"
	v1 "tutorcenter/internal/infrastructure/http/v1"
	"tutorcenter/internal/infrastructure/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := app.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	log.Infow("starting server", "app", cfg.AppName, "env", cfg.Env, "timezone", cfg.Location.String())

	// --- Database and services ---
	m := metrics.New()
	container, pool, err := app.Open(ctx, cfg, m)
	if err != nil {
		log.Fatalw("failed to initialize application", "error", err)
	}
	defer pool.Close()
	m.WatchPool(pool)
	log.Infow("database connection established", "max_conns", cfg.Database.MaxConns)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Container: container,
		Logger:    log.WithComponent("http"),
		Metrics:   m,
		AppName:   cfg.AppName,
		Debug:     cfg.Log.Development,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
