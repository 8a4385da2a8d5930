package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"safeher/internal/location/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/httputil"
	"safeher/pkg/requestcontext"
)

// Service defines the interface for location operations.
type Service interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.Analysis, error)
	History(ctx context.Context, username id.Username, limit int) ([]models.Record, error)
	Latest(ctx context.Context, username id.Username) (*models.Record, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts location endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/analyze", h.HandleAnalyze)
	r.Get("/locations/{username}", h.HandleHistory)
	r.Get("/locations/{username}/latest", h.HandleLatest)
}

// HandleAnalyze handles POST /analyze.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.AnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	analysis, err := h.service.Analyze(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "analysis failed",
			"request_id", requestID,
			"username", req.Username,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromAnalysis(analysis))
}

// HandleHistory handles GET /locations/{username}?limit=N.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	username, err := id.ParseUsername(chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := models.ParseHistoryLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.service.History(ctx, username, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to fetch locations",
			"request_id", requestID,
			"username", username,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "retrieved location records",
		"request_id", requestID,
		"username", username,
		"count", len(records),
	)
	httputil.WriteJSON(w, http.StatusOK, FromHistory(username.String(), records))
}

// HandleLatest handles GET /locations/{username}/latest.
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, err := id.ParseUsername(chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.service.Latest(ctx, username)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}
