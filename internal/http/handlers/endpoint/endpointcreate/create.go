// Package endpointcreate implements the HTTP handler registering delivery
// endpoints.
package endpointcreate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/sl"
	"github.com/criartebr/stream-panel/internal/models"
)

// Service describes the endpoint-creation business logic.
type Service interface {
	Create(ctx context.Context, req models.EndpointCreateRequest) (*models.Endpoint, error)
}

// Handler handles HTTP requests registering endpoints.
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
// @Summary Register a delivery endpoint
// @Description Registers a content-delivery endpoint and returns it.
// @Tags Endpoints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.EndpointCreateRequest true "Endpoint data"
// @Success 200 {object} map[string]any "Created endpoint"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /endpoints [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.endpoint.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.EndpointCreateRequest
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

	endpoint, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Error("failed to create endpoint", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error("could not create endpoint"))
		return
	}

	log.Info("endpoint created", slog.String("id", endpoint.ID))
	render.JSON(w, r, response.OKWithData(endpoint))
}
