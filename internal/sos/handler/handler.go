package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"safeher/internal/sos/models"
	id "safeher/pkg/domain"
	dErrors "safeher/pkg/domain-errors"
	"safeher/pkg/platform/httputil"
	"safeher/pkg/requestcontext"
)

// Service defines the interface for SOS operations.
type Service interface {
	Trigger(ctx context.Context, req *models.TriggerRequest) (*models.Outcome, error)
	History(ctx context.Context, username id.Username) ([]models.Event, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/sos", h.HandleTrigger)
	r.Get("/sos/{username}", h.HandleHistory)
}

// HandleTrigger handles POST /sos.
func (h *Handler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.TriggerRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	outcome, err := h.service.Trigger(ctx, req)
	if err != nil {
		if de, ok := dErrors.From(err); ok && de.Code == dErrors.CodeAlertFailed && outcome != nil {
			httputil.WriteJSON(w, http.StatusBadGateway, &AlertFailedResponse{
				Error:            string(de.Code),
				ErrorDescription: de.Message,
				SOSLogged:        outcome.Logged,
			})
			return
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromOutcome(outcome))
}

// HandleHistory handles GET /sos/{username}.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	username, err := id.ParseUsername(chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.service.History(r.Context(), username)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromEvents(username.String(), events))
}
