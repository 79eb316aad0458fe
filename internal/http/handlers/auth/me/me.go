// Package me implements the HTTP handler returning the current admin.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/criartebr/stream-panel/internal/http/middlewarectx"
	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/sl"
	"github.com/criartebr/stream-panel/internal/models"
)

// Service resolves an admin account by email.
type Service interface {
	AdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// Handler handles HTTP requests for the current admin profile.
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
// @Summary Current admin profile
// @Description Returns the admin account behind the bearer token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Admin account"
// @Failure 401 {object} response.ErrorResponse "Not authenticated"
// @Failure 500 {object} response.ErrorResponse "Server failure"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	email, ok := r.Context().Value(middlewarectx.AdminEmail).(string)
	if !ok || email == "" {
		log.Error("admin email not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	admin, err := h.service.AdminByEmail(r.Context(), email)
	if err != nil {
		log.Error("failed to load admin", sl.Err(err))
		w.WriteHeader(response.StatusOf(err))
		render.JSON(w, r, response.Error("could not load admin"))
		return
	}

	render.JSON(w, r, response.OKWithData(admin))
}
