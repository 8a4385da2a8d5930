package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"safeher/internal/platform/metrics"
	"safeher/pkg/platform/httputil"
	"safeher/pkg/requestcontext"
)

const pingTimeout = 2 * time.Second

const (
	depConnected     = "Connected"
	depDisconnected  = "Disconnected"
	depNotConfigured = "Not configured"
)

// Probe reports whether a dependency is reachable.
type Probe func(ctx context.Context) error

type PingResponse struct {
	Status    string    `json:"status"`
	Project   string    `json:"project"`
	Database  string    `json:"database"`
	Cache     string    `json:"cache"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthHandler serves GET /ping. A nil probe means the dependency is not
// configured and never fails the check.
type HealthHandler struct {
	database Probe
	cache    Probe
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewHealthHandler(database, cache Probe, m *metrics.Metrics, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{database: database, cache: cache, metrics: m, logger: logger}
}

// HandlePing probes every dependency concurrently.
func (h *HealthHandler) HandlePing(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	var dbState, cacheState string
	var g errgroup.Group
	g.Go(func() error {
		dbState = h.probe(ctx, "postgres", h.database)
		return nil
	})
	g.Go(func() error {
		cacheState = h.probe(ctx, "redis", h.cache)
		return nil
	})
	_ = g.Wait()

	status := http.StatusOK
	if dbState == depDisconnected || cacheState == depDisconnected {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, &PingResponse{
		Status:    "Online",
		Project:   "SAFEHER",
		Database:  dbState,
		Cache:     cacheState,
		Timestamp: requestcontext.Now(r.Context()),
	})
}

func (h *HealthHandler) probe(ctx context.Context, name string, p Probe) string {
	if p == nil {
		return depNotConfigured
	}
	if err := p(ctx); err != nil {
		h.metrics.SetDependencyUp(name, false)
		h.logger.WarnContext(ctx, "dependency health check failed",
			"request_id", requestcontext.RequestID(ctx),
			"dependency", name,
			"error", err,
		)
		return depDisconnected
	}
	h.metrics.SetDependencyUp(name, true)
	return depConnected
}
