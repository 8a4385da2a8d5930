package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safeher/internal/ratelimit/metrics"
	"safeher/internal/ratelimit/models"
	"safeher/internal/ratelimit/store"
	"safeher/pkg/platform/middleware/metadata"
)

type failingStore struct{}

func (failingStore) Allow(context.Context, string, models.Limit) (*models.Result, error) {
	return nil, errors.New("redis: connection refused")
}

var limits = map[models.EndpointClass]models.Limit{
	models.ClassRead:    {Requests: 2, Window: time.Minute},
	models.ClassWrite:   {Requests: 1, Window: time.Minute},
	models.ClassAnalyze: {Requests: 1, Window: time.Minute},
}

func newLimited(st Store, opts ...Option) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	return metadata.ClientMetadata(New(st, limits, logger, opts...).Handler(ok))
}

func send(h http.Handler, method, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry())
	h := newLimited(store.NewInMemory(), WithMetrics(m))

	t.Run("budget per class and client", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "/contacts/asha_k", "10.0.0.1").Code)
		rec := send(h, http.MethodGet, "/contacts/asha_k", "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

		rec = send(h, http.MethodGet, "/routines/asha_k", "10.0.0.1")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))

		assert.Equal(t, http.StatusOK, send(h, http.MethodGet, "/contacts/asha_k", "10.0.0.2").Code)
		assert.Equal(t, http.StatusOK, send(h, http.MethodPost, "/routine", "10.0.0.1").Code)
		assert.Equal(t, http.StatusOK, send(h, http.MethodPost, "/analyze", "10.0.0.1").Code)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejected.WithLabelValues("read")))
	})

	t.Run("sos is never limited", func(t *testing.T) {
		for range 5 {
			require.Equal(t, http.StatusOK, send(h, http.MethodPost, "/sos", "10.0.0.9").Code)
		}
	})
}

func TestRateLimitFailsOpen(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry())
	h := newLimited(failingStore{}, WithMetrics(m))
	assert.Equal(t, http.StatusOK, send(h, http.MethodPost, "/routine", "10.0.0.1").Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreErrors))
}

func TestRateLimitDisabled(t *testing.T) {
	h := newLimited(failingStore{}, WithDisabled(true))
	for range 3 {
		assert.Equal(t, http.StatusOK, send(h, http.MethodPost, "/routine", "10.0.0.1").Code)
	}
}

func TestRateLimitCustomClassifier(t *testing.T) {
	onlyAnalyze := func(r *http.Request) (models.EndpointClass, bool) {
		return models.ClassAnalyze, r.URL.Path == "/analyze"
	}
	h := newLimited(store.NewInMemory(), WithClassifier(onlyAnalyze))

	assert.Equal(t, http.StatusOK, send(h, http.MethodPost, "/analyze", "10.0.0.3").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(h, http.MethodPost, "/analyze", "10.0.0.3").Code)
	for range 3 {
		assert.Equal(t, http.StatusOK, send(h, http.MethodPost, "/routine", "10.0.0.3").Code)
	}
}

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		method, path string
		class        models.EndpointClass
		limited      bool
	}{
		{http.MethodPost, "/sos", "", false},
		{http.MethodGet, "/ping", "", false},
		{http.MethodPost, "/analyze", models.ClassAnalyze, true},
		{http.MethodGet, "/locations/asha_k", models.ClassRead, true},
		{http.MethodDelete, "/routines/asha_k/1", models.ClassWrite, true},
	}
	for _, tt := range tests {
		class, ok := DefaultClassifier(httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.limited, ok, tt.path)
		assert.Equal(t, tt.class, class, tt.path)
	}
}
