// Package endpointlist implements the HTTP handler listing delivery
// endpoints.
package endpointlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/sl"
	"github.com/criartebr/stream-panel/internal/models"
)

// Service describes the endpoint-listing business logic.
type Service interface {
	List(ctx context.Context) ([]*models.Endpoint, error)
}

// Handler handles HTTP requests listing endpoints.
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
// @Summary List delivery endpoints
// @Tags Endpoints
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Endpoints"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /endpoints [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.endpoint.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	endpoints, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list endpoints", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list endpoints"))
		return
	}
	if endpoints == nil {
		endpoints = []*models.Endpoint{}
	}

	render.JSON(w, r, response.OKWithData(endpoints))
}
