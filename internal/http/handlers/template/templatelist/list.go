// Package templatelist implements the HTTP handler listing message
// templates.
package templatelist

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

// Service describes the template-listing business logic.
type Service interface {
	List(ctx context.Context) ([]*models.MessageTemplate, error)
}

// Handler handles HTTP requests listing templates.
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
// @Summary List message templates
// @Tags Templates
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Templates"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /templates [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.template.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	templates, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list templates", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list templates"))
		return
	}
	if templates == nil {
		templates = []*models.MessageTemplate{}
	}

	render.JSON(w, r, response.OKWithData(templates))
}
