// Package login implements the HTTP handler for admin login.
package login

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

// Service describes the login business logic.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (string, error)
}

// Handler handles HTTP login requests.
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
// @Summary Log in as admin
// @Description Checks credentials and returns a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Admin credentials"
// @Success 200 {object} map[string]any "Session token"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 401 {object} response.ErrorResponse "Bad credentials"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Router /auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.LoginRequest
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

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		log.Error("failed to login", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not login")))
		return
	}

	log.Info("admin logged in", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
	}))
}
