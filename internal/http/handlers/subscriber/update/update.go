// Package update implements the HTTP handler patching subscribers.
//
// A patch that touches username, password or endpoint makes the registry
// rebuild the access URL from the merged view. An empty patch is a no-op.
package update

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

// Service describes the subscriber-update business logic.
type Service interface {
	Update(ctx context.Context, id string, patch models.SubscriberPatch) (*models.Subscriber, error)
}

// Handler handles HTTP requests patching subscribers.
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
// @Summary Update a subscriber
// @Description Applies a partial patch; the access URL is rebuilt when a credential field changes.
// @Tags Subscribers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscriber ID"
// @Param request body models.SubscriberPatch true "Fields to change"
// @Success 200 {object} map[string]any "Updated subscriber"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON or duplicate username"
// @Failure 404 {object} response.ErrorResponse "Subscriber or endpoint not found"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /subscribers/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var patch models.SubscriberPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	sub, err := h.service.Update(r.Context(), id, patch)
	if err != nil {
		log.Error("failed to update subscriber", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not update subscriber")))
		return
	}

	log.Info("subscriber updated", slog.String("id", id))
	render.JSON(w, r, response.OKWithData(sub))
}
