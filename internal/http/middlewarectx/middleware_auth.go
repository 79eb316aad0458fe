// Package middlewarectx contains the HTTP middleware of the protected
// API: bearer-token authentication and a request rate limit.
//
// JWTMiddleware checks the Authorization header, validates the token
// through the auth service and puts the admin email into the request
// context for the handlers behind it.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/criartebr/stream-panel/internal/http/response"
	"github.com/criartebr/stream-panel/internal/lib/sl"
	"github.com/criartebr/stream-panel/internal/models"
)

// Key is the type of the request-context keys set by this package.
type Key string

// AdminEmail is the context key holding the authenticated admin email.
const AdminEmail Key = "admin_email"

// Service validates a bearer token and resolves its admin account.
type Service interface {
	Authenticate(ctx context.Context, token string) (*models.Admin, error)
}

// JWTMiddleware returns middleware that requires a valid bearer token.
// On success the admin email is added to the request context; otherwise
// the request is rejected with 401.
func JWTMiddleware(auth Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			authHeader := r.Header.Get("Authorization")

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			admin, err := auth.Authenticate(r.Context(), tokenStr)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), AdminEmail, admin.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
