// Package qrcode implements the HTTP handler returning the messaging
// gateway pairing payload for the configured instance.
package qrcode

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/lib/sl"
)

// Service describes the pairing business logic.
type Service interface {
	QRCode(ctx context.Context) (json.RawMessage, error)
}

// Handler handles HTTP requests for the gateway pairing payload.
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
// @Summary Gateway pairing QR code
// @Description Returns the raw pairing payload of the configured gateway instance.
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Pairing payload"
// @Failure 400 {object} response.ErrorResponse "Gateway not configured"
// @Failure 500 {object} response.ErrorResponse "Gateway unreachable"
// @Router /whatsapp/qrcode [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.whatsapp.qrcode"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	payload, err := h.service.QRCode(r.Context())
	if err != nil {
		log.Error("failed to fetch qrcode", sl.Err(err))
		status := response.StatusOf(err)
		if apperr.Is(err, apperr.Upstream) {
			status = http.StatusBadGateway
		}
		w.WriteHeader(status)
		render.JSON(w, r, response.Error(apperr.Message(err, "could not fetch qrcode")))
		return
	}

	render.JSON(w, r, response.OKWithData(payload))
}
