// Package register implements the HTTP handler creating admin accounts.
//
// The handler decodes the registration payload, validates it, delegates
// to the auth service and returns a fresh session token.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/lib/sl"
	"github.com/criartebr/stream-panel/internal/models"
)

// Service describes the registration business logic.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (string, error)
}

// Handler handles HTTP requests creating admin accounts.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Register an admin account
// @Description Creates an admin account and returns a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Admin account data"
// @Success 200 {object} map[string]any "Session token"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or duplicate email"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Error("failed to register admin", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not register admin")))
		return
	}

	log.Info("admin registered", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
	}))
}
