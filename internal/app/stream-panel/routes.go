// Package streampanel provides the route table of the panel API.
package streampanel

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/criartebr/stream-panel/internal/http/handlers/auth/login"
	"github.com/criartebr/stream-panel/internal/http/handlers/auth/me"
	"github.com/criartebr/stream-panel/internal/http/handlers/auth/register"
	"github.com/criartebr/stream-panel/internal/http/handlers/endpoint/endpointcreate"
	"github.com/criartebr/stream-panel/internal/http/handlers/endpoint/endpointlist"
	"github.com/criartebr/stream-panel/internal/http/handlers/endpoint/endpointread"
	"github.com/criartebr/stream-panel/internal/http/handlers/endpoint/endpointremove"
	"github.com/criartebr/stream-panel/internal/http/handlers/endpoint/endpointupdate"
	"github.com/criartebr/stream-panel/internal/http/handlers/health"
	"github.com/criartebr/stream-panel/internal/http/handlers/notification/sendreminder"
	"github.com/criartebr/stream-panel/internal/http/handlers/payment/paymentcreate"
	"github.com/criartebr/stream-panel/internal/http/handlers/payment/paymentlist"
	"github.com/criartebr/stream-panel/internal/http/handlers/payment/paymentremove"
	"github.com/criartebr/stream-panel/internal/http/handlers/portal"
	"github.com/criartebr/stream-panel/internal/http/handlers/settings/settingsget"
	"github.com/criartebr/stream-panel/internal/http/handlers/settings/settingsupdate"
	"github.com/criartebr/stream-panel/internal/http/handlers/stats"
	"github.com/criartebr/stream-panel/internal/http/handlers/subscriber/create"
	"github.com/criartebr/stream-panel/internal/http/handlers/subscriber/list"
	"github.com/criartebr/stream-panel/internal/http/handlers/subscriber/read"
	"github.com/criartebr/stream-panel/internal/http/handlers/subscriber/remove"
	"github.com/criartebr/stream-panel/internal/http/handlers/subscriber/update"
	"github.com/criartebr/stream-panel/internal/http/handlers/subscriber/validate"
	"github.com/criartebr/stream-panel/internal/http/handlers/template/templatecreate"
	"github.com/criartebr/stream-panel/internal/http/handlers/template/templatelist"
	"github.com/criartebr/stream-panel/internal/http/handlers/template/templateremove"
	"github.com/criartebr/stream-panel/internal/http/handlers/whatsapp/qrcode"
	"github.com/criartebr/stream-panel/internal/http/middlewarectx"
	authservice "github.com/criartebr/stream-panel/internal/services/auth"
	endpointservice "github.com/criartebr/stream-panel/internal/services/endpoint"
	notifyservice "github.com/criartebr/stream-panel/internal/services/notify"
	paymentservice "github.com/criartebr/stream-panel/internal/services/payment"
	settingsservice "github.com/criartebr/stream-panel/internal/services/settings"
	statsservice "github.com/criartebr/stream-panel/internal/services/stats"
	subscriberservice "github.com/criartebr/stream-panel/internal/services/subscriber"
	templateservice "github.com/criartebr/stream-panel/internal/services/template"
	"github.com/criartebr/stream-panel/internal/storage/repository"
)

// Services collects the business services handed to the route table.
type Services struct {
	Auth       *authservice.AuthService
	Endpoint   *endpointservice.EndpointService
	Subscriber *subscriberservice.SubscriberService
	Payment    *paymentservice.PaymentService
	Notify     *notifyservice.NotifyService
	Settings   *settingsservice.SettingsService
	Stats      *statsservice.StatsService
	Template   *templateservice.TemplateService
	Storage    *repository.Storage
}

// RegisterRoutes registers every route of the application.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Open endpoints
		r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Get("/portal/{username}", portal.New(logger, svc.Subscriber).ServeHTTP)
		r.Get("/health", health.New(logger, svc.Storage).ServeHTTP)

		// Admin group behind the bearer token
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/me", me.New(logger, svc.Auth).ServeHTTP)

			r.Post("/endpoints", endpointcreate.New(logger, svc.Endpoint).ServeHTTP)
			r.Get("/endpoints", endpointlist.New(logger, svc.Endpoint).ServeHTTP)
			r.Get("/endpoints/{id}", endpointread.New(logger, svc.Endpoint).ServeHTTP)
			r.Put("/endpoints/{id}", endpointupdate.New(logger, svc.Endpoint).ServeHTTP)
			r.Delete("/endpoints/{id}", endpointremove.New(logger, svc.Endpoint).ServeHTTP)

			r.Post("/subscribers", create.New(logger, svc.Subscriber).ServeHTTP)
			r.Get("/subscribers", list.New(logger, svc.Subscriber).ServeHTTP)
			r.Get("/subscribers/{id}", read.New(logger, svc.Subscriber).ServeHTTP)
			r.Put("/subscribers/{id}", update.New(logger, svc.Subscriber).ServeHTTP)
			r.Delete("/subscribers/{id}", remove.New(logger, svc.Subscriber).ServeHTTP)
			r.Post("/subscribers/{id}/validate-access", validate.New(logger, svc.Subscriber).ServeHTTP)

			r.Post("/payments", paymentcreate.New(logger, svc.Payment).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, svc.Payment).ServeHTTP)
			r.Delete("/payments/{id}", paymentremove.New(logger, svc.Payment).ServeHTTP)

			r.Get("/settings", settingsget.New(logger, svc.Settings).ServeHTTP)
			r.Put("/settings", settingsupdate.New(logger, svc.Settings).ServeHTTP)

			r.Post("/templates", templatecreate.New(logger, svc.Template).ServeHTTP)
			r.Get("/templates", templatelist.New(logger, svc.Template).ServeHTTP)
			r.Delete("/templates/{id}", templateremove.New(logger, svc.Template).ServeHTTP)

			r.Get("/stats", stats.New(logger, svc.Stats).ServeHTTP)

			r.Post("/notifications/send-reminder", sendreminder.New(logger, svc.Notify).ServeHTTP)
			r.Get("/whatsapp/qrcode", qrcode.New(logger, svc.Notify).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
