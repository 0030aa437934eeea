package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vitrina",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by method, path, and status code.",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vitrina",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "path"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vitrina",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being processed.",
	})

	authRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vitrina",
		Name:      "auth_rejections_total",
		Help:      "Total requests rejected for a missing or invalid token.",
	})

	validationRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vitrina",
		Name:      "validation_rejections_total",
		Help:      "Total requests rejected for missing required fields.",
	})

	// ProductsStored tracks the current size of the product store.
	ProductsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "vitrina",
		Name:      "products",
		Help:      "Number of products currently stored.",
	})

	// ProductMutations counts successful writes by operation (create, update, delete).
	ProductMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vitrina",
		Name:      "product_mutations_total",
		Help:      "Total successful product mutations by operation.",
	}, []string{"op"})
)

// normalizePath maps request paths to metric-safe labels to avoid cardinality explosion.
func normalizePath(path string) string {
	switch path {
	case "/api/products", "/api/products/":
		return "/api/products"
	case "/health", "/health/ready", "/version", "/metrics", "/openapi.yaml", "/docs":
		return path
	}
	if rest, ok := strings.CutPrefix(path, "/api/products/"); ok && rest != "" && !strings.Contains(rest, "/") {
		return "/api/products/{id}"
	}
	return "/other"
}

// Metrics returns middleware that records Prometheus metrics for every request.
func Metrics() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := normalizePath(r.URL.Path)

			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			status := strconv.Itoa(sw.status)
			httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		})
	}
}
