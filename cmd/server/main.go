// Package main is the entry point for the wastewizard server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/api"
	"github.com/randytsao24/wastewizard/internal/app"
	"github.com/randytsao24/wastewizard/internal/config"
	"github.com/randytsao24/wastewizard/internal/logging"
	"github.com/randytsao24/wastewizard/internal/observability"
)

func main() {
	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	metrics, err := observability.NewCollector(nil)
	if err != nil {
		log.Fatal("failed to register metrics", zap.Error(err))
	}

	services := app.New(cfg, log, metrics)
	defer services.Close()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(services.Skill, metrics, log.Named("http")),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.Env),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
