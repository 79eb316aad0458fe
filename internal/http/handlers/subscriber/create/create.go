// Package create implements the HTTP handler creating subscribers.
//
// The handler decodes the subscriber payload, validates it and delegates
// to the registry, which checks uniqueness, resolves the endpoint and
// derives the access URL.
package create

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

// Service describes the subscriber-creation business logic.
type Service interface {
	Create(ctx context.Context, req models.SubscriberCreateRequest) (*models.Subscriber, error)
}

// Handler handles HTTP requests creating subscribers.
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
// @Summary Create a subscriber
// @Description Creates a subscriber with a derived access URL.
// @Tags Subscribers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SubscriberCreateRequest true "Subscriber data"
// @Success 200 {object} map[string]any "Created subscriber"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or duplicate username"
// @Failure 404 {object} response.ErrorResponse "Endpoint not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /subscribers [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SubscriberCreateRequest
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

	sub, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create subscriber", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not create subscriber")))
		return
	}

	log.Info("subscriber created", slog.String("id", sub.ID), slog.String("username", sub.Username))
	render.JSON(w, r, response.OKWithData(sub))
}
