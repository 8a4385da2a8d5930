package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"safeher/internal/contact/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/httputil"
	"safeher/pkg/requestcontext"
)

// Service defines the interface for emergency contact operations.
type Service interface {
	Add(ctx context.Context, req *models.CreateContactRequest) (*models.Contact, error)
	List(ctx context.Context, username id.Username) ([]models.Contact, error)
	Delete(ctx context.Context, username id.Username, contactID id.ContactID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/contact", h.HandleCreate)
	r.Get("/contacts/{username}", h.HandleList)
	r.Delete("/contacts/{username}/{id}", h.HandleDelete)
}

// HandleCreate handles POST /contact.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateContactRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	c, err := h.service.Add(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, &CreateContactResponse{
		Status:  "Success",
		Message: "Contact saved",
		Contact: FromContact(c),
	})
}

// HandleList handles GET /contacts/{username}.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	username, err := id.ParseUsername(chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	contacts, err := h.service.List(r.Context(), username)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fetch contacts",
			"request_id", requestcontext.RequestID(r.Context()),
			"username", username,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromContacts(username.String(), contacts))
}

// HandleDelete handles DELETE /contacts/{username}/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	username, err := id.ParseUsername(chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	contactID, err := id.ParseContactID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), username, contactID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
