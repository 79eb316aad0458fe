// Package settingsupdate implements the HTTP handler patching the tenant
// settings record.
package settingsupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/sl"
	"github.com/criartebr/stream-panel/internal/models"
)

// Service describes the settings-update business logic.
type Service interface {
	Update(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error)
}

// Handler handles HTTP requests patching settings.
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
// @Summary Update tenant settings
// @Description Applies a partial patch; absent fields are left untouched.
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SettingsPatch true "Fields to change"
// @Success 200 {object} map[string]any "Updated settings"
// @Failure 400 {object} response.ErrorResponse "Malformed JSON"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /settings [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.settings.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var patch models.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	settings, err := h.service.Update(r.Context(), patch)
	if err != nil {
		log.Error("failed to update settings", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error("could not update settings"))
		return
	}

	log.Info("settings updated")
	render.JSON(w, r, response.OKWithData(settings))
}
