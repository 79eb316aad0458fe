// Package paymentlist implements the HTTP handler listing the payment
// ledger, optionally filtered to one subscriber.
package paymentlist

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

// Service describes the ledger-listing business logic.
type Service interface {
	List(ctx context.Context) ([]*models.Payment, error)
	ListBySubscriber(ctx context.Context, subscriberID string) ([]*models.Payment, error)
}

// Handler handles HTTP requests listing payments.
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
// @Summary List payments
// @Description Returns the ledger newest first; subscriber_id narrows it to one subscriber.
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param subscriber_id query string false "Filter by subscriber"
// @Success 200 {object} map[string]any "Payments"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var (
		payments []*models.Payment
		err      error
	)
	if subscriberID := r.URL.Query().Get("subscriber_id"); subscriberID != "" {
		payments, err = h.service.ListBySubscriber(r.Context(), subscriberID)
	} else {
		payments, err = h.service.List(r.Context())
	}
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}
	if payments == nil {
		payments = []*models.Payment{}
	}

	render.JSON(w, r, response.OKWithData(payments))
}
