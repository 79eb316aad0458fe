// Package sendreminder implements the HTTP handler dispatching expiration
// reminders through the messaging gateway. Dispatch failures come back as
// data: a gateway refusal is still a 200 response with success=false.
package sendreminder

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/lib/sl"
	"github.com/criartebr/stream-panel/internal/models"
)

// Service describes the reminder-dispatch business logic.
type Service interface {
	SendReminder(ctx context.Context, req models.ReminderRequest) (models.DispatchResult, error)
}

// Handler handles HTTP requests dispatching reminders.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New creates a Handler with the given logger and service.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Send an expiration reminder
// @Description Resolves phone and message for a subscriber and posts them to the messaging gateway.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ReminderRequest true "Reminder target and overrides"
// @Success 200 {object} map[string]any "Dispatch outcome"
// @Failure 400 {object} response.ErrorResponse "Gateway disabled or no phone resolvable"
// @Failure 404 {object} response.ErrorResponse "Subscriber not found"
// @Failure 422 {object} response.ErrorResponse "Validation failure"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /notifications/send-reminder [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.sendreminder"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.SendReminder(r.Context(), req)
	if err != nil {
		log.Error("failed to dispatch reminder", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error(apperr.Message(err, "could not dispatch reminder")))
		return
	}

	log.Info("reminder dispatch finished", slog.Bool("success", result.Success))
	render.JSON(w, r, response.OKWithData(result))
}
