// Package server configures and runs the HTTP server.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/menezmethod/vitrina/internal/apierror"
	"github.com/menezmethod/vitrina/internal/auth"
	"github.com/menezmethod/vitrina/internal/config"
	"github.com/menezmethod/vitrina/internal/handler"
	"github.com/menezmethod/vitrina/internal/middleware"
	"github.com/menezmethod/vitrina/internal/store"
)

// New creates a configured *http.Server with all routes and middleware wired.
func New(cfg config.Config, st store.Store, secret *auth.Secret, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      Handler(cfg, st, secret, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

// Handler builds the routed handler served by New.
//
// Every request passes, outermost first, through
// RequestID → Recover → Metrics → Logging → JSONBody before routing.
// Writes then add Auth, and create/update add Require after it.
func Handler(cfg config.Config, st store.Store, secret *auth.Secret, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	if obs, ok := st.(store.SizeObserver); ok {
		obs.OnResize(func(n int) { middleware.ProductsStored.Set(float64(n)) })
	} else {
		middleware.ProductsStored.Set(float64(st.Len()))
	}

	route := func(fn apierror.HandlerFunc, mw ...middleware.Middleware) http.Handler {
		return middleware.Chain(apierror.Handle(logger, fn), mw...)
	}
	authed := middleware.Auth(cfg.Auth.Header, secret)
	required := middleware.Require(apierror.MsgRequired, "name", "price")

	// Health, docs, and metrics.
	mux.HandleFunc("GET /health", handler.Health())
	mux.HandleFunc("GET /health/ready", handler.Ready(st))
	mux.HandleFunc("GET /version", handler.VersionInfo())
	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI())
	mux.HandleFunc("GET /docs", handler.SwaggerUI())
	mux.Handle("GET /metrics", promhttp.Handler())

	// Product catalog. Reads are public; writes need the token.
	mux.Handle("GET /api/products", route(handler.ListProducts(st)))
	mux.Handle("GET /api/products/{id}", route(handler.GetProduct(st)))
	mux.Handle("POST /api/products", route(handler.CreateProduct(st), authed, required))
	mux.Handle("PUT /api/products/{id}", route(handler.UpdateProduct(st), authed, required))
	mux.Handle("DELETE /api/products/{id}", route(handler.DeleteProduct(st), authed))

	mux.Handle("/", route(handler.NotFound()))

	return middleware.Chain(mux,
		middleware.RequestID(),
		middleware.Recover(logger),
		middleware.Metrics(),
		middleware.Logging(logger),
		middleware.JSONBody(cfg.Server.MaxBodyBytes),
	)
}

// Shutdown gracefully shuts down the server with the given context.
func Shutdown(ctx context.Context, srv *http.Server, logger *slog.Logger) {
	logger.Info("shutting down server")
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err)
	}
}
