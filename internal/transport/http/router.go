// Package httptransport assembles the public HTTP surface: shared middleware,
// module routes, health and metrics.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"safeher/internal/platform/metrics"
	"safeher/internal/platform/middleware"
	"safeher/pkg/platform/middleware/metadata"
	"safeher/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by module handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	RequestTimeout time.Duration
	Health         *HealthHandler
	// MetricsHandler serves /metrics. Nil disables the endpoint.
	MetricsHandler http.Handler
	// Clock stamps each request. Defaults to time.Now.
	Clock func() time.Time
	// RateLimit runs after the client IP is known. Nil disables limiting.
	RateLimit func(http.Handler) http.Handler
}

// NewRouter wires middleware in outermost-first order and mounts every module.
func NewRouter(cfg RouterConfig, modules ...Registrar) http.Handler {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(requesttime.MiddlewareWithClock(clock))
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.LatencyMiddleware(cfg.Metrics))
	if cfg.RateLimit != nil {
		r.Use(cfg.RateLimit)
	}

	if cfg.Health != nil {
		r.Get("/ping", cfg.Health.HandlePing)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	for _, m := range modules {
		m.Register(r)
	}
	return r
}
