// Package streampanel assembles the panel service: storage, cache,
// gateway client, the business services and the HTTP server.
package streampanel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/criartebr/stream-panel/internal/cache"
	"github.com/criartebr/stream-panel/internal/config"
	"github.com/criartebr/stream-panel/internal/gateway"
	"github.com/criartebr/stream-panel/internal/lib/jwt"
	"github.com/criartebr/stream-panel/internal/migrations"
	authservice "github.com/criartebr/stream-panel/internal/services/auth"
	credservice "github.com/criartebr/stream-panel/internal/services/credential"
	endpointservice "github.com/criartebr/stream-panel/internal/services/endpoint"
	notifyservice "github.com/criartebr/stream-panel/internal/services/notify"
	paymentservice "github.com/criartebr/stream-panel/internal/services/payment"
	settingsservice "github.com/criartebr/stream-panel/internal/services/settings"
	statsservice "github.com/criartebr/stream-panel/internal/services/stats"
	templateservice "github.com/criartebr/stream-panel/internal/services/template"
	subscriberservice "github.com/criartebr/stream-panel/internal/services/subscriber"
	"github.com/criartebr/stream-panel/internal/storage/repository"
)

// App is the assembled service.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New builds the application: opens the store, runs migrations, connects
// the cache and wires every service into the router.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	maker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	gatewayClient := gateway.NewClient()

	authService := authservice.NewAuthService(db, maker, logger)
	endpointService := endpointservice.NewEndpointService(db, cacheRedis, logger)
	credentialService := credservice.NewCredentialService(logger)
	settingsService := settingsservice.NewSettingsService(db, logger)
	subscriberService := subscriberservice.NewSubscriberService(db, db, db, db, credentialService, logger)
	paymentService := paymentservice.NewPaymentService(db, db, logger)
	notifyService := notifyservice.NewNotifyService(db, settingsService, gatewayClient, logger)
	statsService := statsservice.NewStatsService(db, paymentService, logger)
	templateService := templateservice.NewTemplateService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &Services{
		Auth:       authService,
		Endpoint:   endpointService,
		Subscriber: subscriberService,
		Payment:    paymentService,
		Notify:     notifyService,
		Settings:   settingsService,
		Stats:      statsService,
		Template:   templateService,
		Storage:    db,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
