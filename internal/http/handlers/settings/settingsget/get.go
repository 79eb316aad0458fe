// Package settingsget implements the HTTP handler returning the tenant
// settings record, materializing the default one on first read.
package settingsget

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

// Service describes the settings-read business logic.
type Service interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// Handler handles HTTP requests reading settings.
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
// @Summary Read tenant settings
// @Tags Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Settings"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /settings [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.get"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	settings, err := h.service.Get(r.Context())
	if err != nil {
		log.Error("failed to read settings", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read settings"))
		return
	}

	render.JSON(w, r, response.OKWithData(settings))
}
