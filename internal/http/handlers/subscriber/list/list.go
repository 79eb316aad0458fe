// Package list implements the HTTP handler listing subscribers.
package list

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

// Service describes the subscriber-listing business logic.
type Service interface {
	List(ctx context.Context) ([]*models.Subscriber, error)
}

// Handler handles HTTP requests listing subscribers.
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
// @Summary List subscribers
// @Description Returns every subscriber with the expiry flag computed now.
// @Tags Subscribers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Subscribers"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /subscribers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list subscribers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscribers"))
		return
	}
	if subs == nil {
		subs = []*models.Subscriber{}
	}

	render.JSON(w, r, response.OKWithData(subs))
}
