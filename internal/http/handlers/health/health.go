// Package health implements the liveness and readiness probe handler.
// Readiness checks the database schema; a failing check answers 503.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/sl"
)

// Service reports whether the storage behind the API is usable.
type Service interface {
	Ready(ctx context.Context) error
}

// Handler answers health probes.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New creates a Handler with the given logger and readiness service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Health probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]any "Service is healthy"
// @Failure 503 {object} response.ErrorResponse "Storage unavailable"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.service.Ready(r.Context()); err != nil {
		log.Error("storage not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("storage unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
