// Package endpointremove implements the HTTP handler deleting delivery
// endpoints.
package endpointremove

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
)

// Service describes the endpoint-removal business logic.
type Service interface {
	Remove(ctx context.Context, id string) error
}

// Handler handles HTTP requests deleting endpoints.
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
// @Summary Delete a delivery endpoint
// @Description Deletes an endpoint. Subscribers keep their stale reference.
// @Tags Endpoints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Endpoint ID"
// @Success 200 {object} response.Response "Deleted"
// @Failure 404 {object} response.ErrorResponse "Endpoint not found"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /endpoints/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.endpoint.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	if err := h.service.Remove(r.Context(), id); err != nil {
		log.Error("failed to delete endpoint", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not delete endpoint")))
		return
	}

	log.Info("endpoint deleted", slog.String("id", id))
	render.JSON(w, r, response.OK())
}
