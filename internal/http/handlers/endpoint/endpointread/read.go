// Package endpointread implements the HTTP handler returning one delivery
// endpoint.
package endpointread

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/lib/sl"
	"github.com/criartebr/stream-panel/internal/models"
)

// Service describes the endpoint-read business logic.
type Service interface {
	Get(ctx context.Context, id string) (*models.Endpoint, error)
}

// Handler handles HTTP requests reading an endpoint.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Read a delivery endpoint
// @Tags Endpoints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Endpoint ID"
// @Success 200 {object} map[string]any "Endpoint"
// @Failure 404 {object} response.ErrorResponse "Endpoint not found"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /endpoints/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.endpoint.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	endpoint, err := h.service.Get(r.Context(), id)
	if err != nil {
		log.Error("failed to read endpoint", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not read endpoint")))
		return
	}

	render.JSON(w, r, response.OKWithData(endpoint))
}
