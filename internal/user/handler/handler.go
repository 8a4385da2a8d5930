package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"safeher/internal/user/models"
	id "safeher/pkg/domain"
	"safeher/pkg/platform/httputil"
	"safeher/pkg/requestcontext"
)

// Service defines the interface for user registration and lookup.
type Service interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Get(ctx context.Context, username id.Username) (*models.User, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Get("/user/{username}", h.HandleGet)
}

// HandleRegister handles POST /register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	u, err := h.service.Register(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, &RegisterResponse{
		Status:   "Success",
		Message:  "User registered successfully",
		Username: u.Username.String(),
	})
}

// HandleGet handles GET /user/{username}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	username, err := id.ParseUsername(chi.URLParam(r, "username"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	u, err := h.service.Get(r.Context(), username)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromUser(u))
}
