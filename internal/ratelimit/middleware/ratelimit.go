// Package middleware applies per-client request budgets by endpoint class.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"safeher/internal/ratelimit/metrics"
	"safeher/internal/ratelimit/models"
	"safeher/pkg/platform/httputil"
	"safeher/pkg/requestcontext"
)

type Store interface {
	Allow(ctx context.Context, key string, limit models.Limit) (*models.Result, error)
}

// Classifier maps a request to its class. ok=false exempts the request.
type Classifier func(r *http.Request) (class models.EndpointClass, ok bool)

type Middleware struct {
	store    Store
	limits   map[models.EndpointClass]models.Limit
	classify Classifier
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled turns the limiter into a pass-through.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

func WithClassifier(c Classifier) Option {
	return func(m *Middleware) {
		m.classify = c
	}
}

func New(store Store, limits map[models.EndpointClass]models.Limit, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:    store,
		limits:   limits,
		classify: DefaultClassifier,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// DefaultClassifier never limits POST /sos; an emergency must always get
// through. POST /analyze has its own class because clients stream positions.
func DefaultClassifier(r *http.Request) (models.EndpointClass, bool) {
	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case path == "/sos" || path == "/ping" || path == "/metrics":
		return "", false
	case r.Method == http.MethodPost && path == "/analyze":
		return models.ClassAnalyze, true
	case r.Method == http.MethodGet || r.Method == http.MethodHead:
		return models.ClassRead, true
	default:
		return models.ClassWrite, true
	}
}

// Handler enforces the budget for the request's class and client IP. Store
// errors fail open.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}
		class, ok := m.classify(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		limit, ok := m.limits[class]
		if !ok || limit.Requests <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		result, err := m.store.Allow(ctx, models.Key(class, ip), limit)
		if err != nil {
			m.metrics.IncrementStoreErrors()
			m.logger.ErrorContext(ctx, "rate limit check failed",
				"request_id", requestcontext.RequestID(ctx),
				"class", class,
				"error", err,
			)
			next.ServeHTTP(w, r)
			return
		}

		addHeaders(w, result)
		if !result.Allowed {
			m.metrics.IncrementRejected(string(class))
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"request_id", requestcontext.RequestID(ctx),
				"class", class,
				"client_ip", ip,
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteJSON(w, http.StatusTooManyRequests, &models.ExceededResponse{
				Error:      "rate_limit_exceeded",
				Message:    "Too many requests. Please try again later.",
				RetryAfter: result.RetryAfter,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func addHeaders(w http.ResponseWriter, result *models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
