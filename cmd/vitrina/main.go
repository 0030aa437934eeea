package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/menezmethod/vitrina/internal/auth"
	"github.com/menezmethod/vitrina/internal/config"
	"github.com/menezmethod/vitrina/internal/logging"
	"github.com/menezmethod/vitrina/internal/observability"
	"github.com/menezmethod/vitrina/internal/product"
	"github.com/menezmethod/vitrina/internal/server"
	"github.com/menezmethod/vitrina/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (optional, env vars work without it)")
	flag.Parse()

	// Load configuration: defaults -> YAML file -> env vars.
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(os.Stdout, logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, cfg.Log.CloudFormat, cfg.Observability.OTelServiceName)

	secret, err := auth.NewSecret(cfg.Auth.Token)
	if err != nil {
		logger.Error("invalid auth token", "err", err)
		os.Exit(1)
	}

	seed, err := loadSeed(cfg.Store.SeedFile)
	if err != nil {
		logger.Error("failed to load seed products", "err", err)
		os.Exit(1)
	}
	strategy, err := store.ParseIDStrategy(cfg.Store.IDStrategy)
	if err != nil {
		logger.Error("invalid id strategy", "err", err)
		os.Exit(1)
	}
	st := store.NewMemory(strategy, seed...)
	logger.Info("product store ready", "products", st.Len(), "id_strategy", string(strategy))

	srv := server.New(cfg, st, secret, logger)

	// Optional OpenTelemetry tracing: wrap handler so all requests are traced.
	var tp *observability.TracerProvider
	if cfg.Observability.OTelEnabled {
		tp, err = observability.NewTracerProvider(context.Background(), cfg.Observability.OTelEndpoint, cfg.Observability.OTelServiceName)
		if err != nil {
			logger.Error("otel tracer provider failed", "err", err)
			os.Exit(1)
		}
		srv.Handler = observability.HTTPHandler(srv.Handler, cfg.Observability.OTelServiceName)
		logger.Info("opentelemetry tracing enabled", "endpoint", cfg.Observability.OTelEndpoint)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if tp != nil {
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("tracer shutdown failed", "err", err)
		}
	}
	server.Shutdown(ctx, srv, logger)
	logger.Info("server stopped")
}

func loadSeed(path string) ([]product.Product, error) {
	if path == "" {
		return store.DefaultSeed(), nil
	}
	return store.LoadSeed(path)
}
