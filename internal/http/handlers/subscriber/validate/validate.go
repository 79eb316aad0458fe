// Package validate implements the HTTP handler probing a subscriber's
// access URL. The probe outcome arrives as data: an unreachable playlist
// is still a 200 response.
package validate

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

// Service describes the access-validation business logic.
type Service interface {
	ValidateAccess(ctx context.Context, id string) (models.ProbeResult, error)
}

// Handler handles HTTP requests probing subscriber access.
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
// @Summary Probe a subscriber's access URL
// @Description Checks playlist reachability; failures are reported in the result, not as errors.
// @Tags Subscribers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscriber ID"
// @Success 200 {object} map[string]any "Probe outcome"
// @Failure 404 {object} response.ErrorResponse "Subscriber not found"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /subscribers/{id}/validate-access [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscriber.validate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	result, err := h.service.ValidateAccess(r.Context(), id)
	if err != nil {
		log.Error("failed to validate access", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not validate access")))
		return
	}

	log.Info("access validated", slog.String("id", id), slog.Bool("reachable", result.Reachable))
	render.JSON(w, r, response.OKWithData(result))
}
