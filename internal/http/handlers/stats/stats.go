// Package stats implements the HTTP handler returning the dashboard
// summary.
package stats

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

// Service describes the dashboard-aggregation business logic.
type Service interface {
	Summary(ctx context.Context) (*models.Stats, error)
}

// Handler handles HTTP requests for the dashboard summary.
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
// @Summary Dashboard summary
// @Description Subscriber and endpoint counters, completed revenue and recent payments, computed from current state.
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Summary figures"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	summary, err := h.service.Summary(r.Context())
	if err != nil {
		log.Error("failed to build summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build summary"))
		return
	}

	render.JSON(w, r, response.OKWithData(summary))
}
