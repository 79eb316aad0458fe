// Package portal implements the public HTTP handler for subscriber
// self-service: a username resolves to the subscriber's own record,
// endpoint, payment history and the tenant support contact. No bearer
// token is required.
package portal

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

// Service describes the portal business logic.
type Service interface {
	Portal(ctx context.Context, username string) (*models.PortalView, error)
}

// Handler handles public portal requests.
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
// @Summary Subscriber self-service view
// @Description Public view of a subscriber by username.
// @Tags Portal
// @Produce json
// @Param username path string true "Subscriber username"
// @Success 200 {object} map[string]any "Portal view"
// @Failure 404 {object} response.ErrorResponse "Subscriber not found"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /portal/{username} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.portal"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	view, err := h.service.Portal(r.Context(), username)
	if err != nil {
		log.Error("failed to build portal view", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not build portal view")))
		return
	}

	render.JSON(w, r, response.OKWithData(view))
}
