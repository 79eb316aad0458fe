// Package endpointupdate implements the HTTP handler patching delivery
// endpoints.
package endpointupdate

import (
	"context"
	"encoding/json"
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

// Service describes the endpoint-update business logic.
type Service interface {
	Update(ctx context.Context, id string, patch models.EndpointPatch) (*models.Endpoint, error)
}

// Handler handles HTTP requests patching endpoints.
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
// @Summary Update a delivery endpoint
// @Description Applies a partial patch; absent fields are left untouched.
// @Tags Endpoints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Endpoint ID"
// @Param request body models.EndpointPatch true "Fields to change"
// @Success 200 {object} map[string]any "Updated endpoint"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 404 {object} response.ErrorResponse "Endpoint not found"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /endpoints/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.endpoint.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var patch models.EndpointPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	endpoint, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		log.Error("failed to update endpoint", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not update endpoint")))
		return
	}

	log.Info("endpoint updated", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(endpoint))
}
