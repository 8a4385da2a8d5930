package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"safeher/internal/routine/models"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
	"safeher/pkg/platform/httputil"
	"safeher/pkg/requestcontext"
)

// Service defines the interface for routine operations.
type Service interface {
	Create(ctx context.Context, req *models.CreateRoutineRequest) (*models.Routine, error)
	List(ctx context.Context, username id.Username) ([]models.Routine, error)
	Delete(ctx context.Context, username id.Username, routineID id.RoutineID) error
	CheckNow(ctx context.Context, username id.Username, lat, lon float64, now time.Time) (*models.DeviationResult, error)
}

// Handler wires routine endpoints to the routine service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts routine endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/routine", h.HandleCreate)
	r.Post("/routine/check", h.HandleCheck)
	r.Get("/routines/{username}", h.HandleList)
	r.Delete("/routines/{username}/{id}", h.HandleDelete)
}

// HandleCreate handles POST /routine.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateRoutineRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	routine, err := h.service.Create(ctx, req)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create routine",
			"request_id", requestID,
			"username", req.Username,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, FromRoutine(routine))
}

// HandleList handles GET /routines/{username}.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	username, err := id.ParseUsername(chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	routines, err := h.service.List(ctx, username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list routines",
			"request_id", requestID,
			"username", username,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromRoutines(username.String(), routines))
}

// HandleDelete handles DELETE /routines/{username}/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	username, err := id.ParseUsername(chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	routineID, err := id.ParseRoutineID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, username, routineID); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "failed to delete routine",
				"request_id", requestID,
				"username", username,
				"routine_id", routineID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleCheck handles POST /routine/check.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[models.CheckRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.CheckNow(ctx, req.ParsedUsername(), *req.Lat, *req.Lng, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeStorageUnavailable) {
			h.logger.ErrorContext(ctx, "routine check unavailable",
				"request_id", requestID,
				"username", req.Username,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "routine checked",
		"request_id", requestID,
		"username", req.Username,
		"status", result.Status,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
