// Package services implements the subscriber registry: lifecycle of
// subscriber records, access-URL maintenance on credential changes and
// the public self-service portal view.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/models"
	credservice "github.com/criartebr/stream-panel/internal/services/credential"
)

// SubscriberRepository defines the storage methods for subscribers.
type SubscriberRepository interface {
	CreateSubscriber(ctx context.Context, sub models.Subscriber) error
	GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error)
	GetSubscriberByUsername(ctx context.Context, username string) (*models.Subscriber, error)
	ListSubscribers(ctx context.Context) ([]*models.Subscriber, error)
	UpdateSubscriber(ctx context.Context, sub models.Subscriber) (int, error)
	RemoveSubscriber(ctx context.Context, id string) (int, error)
}

// EndpointReader resolves endpoint references during create and re-point.
type EndpointReader interface {
	GetEndpoint(ctx context.Context, id string) (*models.Endpoint, error)
}

// PaymentReader supplies the payment history for the portal view.
type PaymentReader interface {
	ListPaymentsBySubscriber(ctx context.Context, subscriberID string) ([]*models.Payment, error)
}

// SettingsReader supplies the tenant settings for the portal view.
type SettingsReader interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
}

// Prober checks access-URL reachability.
type Prober interface {
	ValidateAccessURL(ctx context.Context, url string) models.ProbeResult
}

// SubscriberService implements registry operations over the repository.
type SubscriberService struct {
	repo      SubscriberRepository
	endpoints EndpointReader
	payments  PaymentReader
	settings  SettingsReader
	prober    Prober
	log       *slog.Logger
}

// NewSubscriberService creates a new SubscriberService.
func NewSubscriberService(
	repo SubscriberRepository,
	endpoints EndpointReader,
	payments PaymentReader,
	settings SettingsReader,
	prober Prober,
	log *slog.Logger,
) *SubscriberService {
	return &SubscriberService{
		repo:      repo,
		endpoints: endpoints,
		payments:  payments,
		settings:  settings,
		prober:    prober,
		log:       log,
	}
}

const defaultPIN = "0000"

// Create registers a subscriber. The username must be free, the endpoint
// must exist, and the access URL is derived before the row is written.
func (s *SubscriberService) Create(ctx context.Context, req models.SubscriberCreateRequest) (*models.Subscriber, error) {
	const op = "services.SubscriberService.Create"

	existing, err := s.repo.GetSubscriberByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		return nil, apperr.New(apperr.Conflict, "username already exists")
	}

	endpoint, err := s.endpoints.GetEndpoint(ctx, req.EndpointID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if endpoint == nil {
		return nil, apperr.New(apperr.NotFound, "endpoint not found")
	}

	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "expires_at must be RFC 3339", err)
	}

	pin := defaultPIN
	if req.PIN != nil {
		pin = *req.PIN
	}

	sub := models.Subscriber{
		ID:         uuid.NewString(),
		Username:   req.Username,
		Password:   req.Password,
		EndpointID: endpoint.ID,
		Name:       req.Name,
		Phone:      req.Phone,
		MACAddress: req.MACAddress,
		AccessURL:  credservice.BuildAccessURL(endpoint.URL, req.Username, req.Password),
		CreatedAt:  time.Now().UTC(),
		ExpiresAt:  expiresAt,
		Active:     true,
		PIN:        pin,
		PlanPrice:  req.PlanPrice,
		PayURL:     req.PayURL,
	}
	if err := s.repo.CreateSubscriber(ctx, sub); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.Classify(time.Now())
	s.log.Info("created subscriber", slog.String("id", sub.ID), slog.String("username", sub.Username))
	return &sub, nil
}

// Get returns a subscriber by ID with the expiry flag computed against
// the current clock.
func (s *SubscriberService) Get(ctx context.Context, id string) (*models.Subscriber, error) {
	sub, err := s.repo.GetSubscriber(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperr.New(apperr.NotFound, "subscriber not found")
	}
	sub.Classify(time.Now())
	return sub, nil
}

// List returns every subscriber, each classified against the same clock
// reading.
func (s *SubscriberService) List(ctx context.Context) ([]*models.Subscriber, error) {
	subs, err := s.repo.ListSubscribers(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for _, sub := range subs {
		sub.Classify(now)
	}
	return subs, nil
}

// Update applies a partial patch. When any credential input changes the
// access URL is rebuilt from the merged view; a patch that re-points the
// subscriber must name an existing endpoint. An empty patch is a no-op
// that returns the stored record.
func (s *SubscriberService) Update(ctx context.Context, id string, patch models.SubscriberPatch) (*models.Subscriber, error) {
	const op = "services.SubscriberService.Update"

	sub, err := s.repo.GetSubscriber(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sub == nil {
		return nil, apperr.New(apperr.NotFound, "subscriber not found")
	}
	if patch.Empty() {
		sub.Classify(time.Now())
		return sub, nil
	}

	if patch.Username != nil && *patch.Username != sub.Username {
		other, err := s.repo.GetSubscriberByUsername(ctx, *patch.Username)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if other != nil {
			return nil, apperr.New(apperr.Conflict, "username already exists")
		}
		sub.Username = *patch.Username
	}
	if patch.Password != nil {
		sub.Password = *patch.Password
	}
	if patch.Name != nil {
		sub.Name = patch.Name
	}
	if patch.Phone != nil {
		sub.Phone = patch.Phone
	}
	if patch.MACAddress != nil {
		sub.MACAddress = patch.MACAddress
	}
	if patch.Active != nil {
		sub.Active = *patch.Active
	}
	if patch.PIN != nil {
		sub.PIN = *patch.PIN
	}
	if patch.PlanPrice != nil {
		sub.PlanPrice = patch.PlanPrice
	}
	if patch.PayURL != nil {
		sub.PayURL = patch.PayURL
	}
	if patch.ExpiresAt != nil {
		expiresAt, err := time.Parse(time.RFC3339, *patch.ExpiresAt)
		if err != nil {
			return nil, apperr.Wrap(apperr.Validation, "expires_at must be RFC 3339", err)
		}
		sub.ExpiresAt = expiresAt
	}

	if patch.TouchesCredentials() {
		var endpoint *models.Endpoint
		if patch.EndpointID != nil {
			endpoint, err = s.endpoints.GetEndpoint(ctx, *patch.EndpointID)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			if endpoint == nil {
				return nil, apperr.New(apperr.NotFound, "endpoint not found")
			}
			sub.EndpointID = endpoint.ID
		} else {
			endpoint, err = s.endpoints.GetEndpoint(ctx, sub.EndpointID)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		// The stored endpoint may have been deleted since the subscriber
		// was created; the stale URL is kept in that case.
		if endpoint != nil {
			sub.AccessURL = credservice.BuildAccessURL(endpoint.URL, sub.Username, sub.Password)
		}
	}

	count, err := s.repo.UpdateSubscriber(ctx, *sub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return nil, apperr.New(apperr.NotFound, "subscriber not found")
	}
	sub.Classify(time.Now())
	return sub, nil
}

// Remove deletes a subscriber. Ledger entries referencing it are kept.
func (s *SubscriberService) Remove(ctx context.Context, id string) error {
	count, err := s.repo.RemoveSubscriber(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "subscriber not found")
	}
	return nil
}

// ValidateAccess probes the subscriber's stored access URL.
func (s *SubscriberService) ValidateAccess(ctx context.Context, id string) (models.ProbeResult, error) {
	sub, err := s.repo.GetSubscriber(ctx, id)
	if err != nil {
		return models.ProbeResult{}, err
	}
	if sub == nil {
		return models.ProbeResult{}, apperr.New(apperr.NotFound, "subscriber not found")
	}
	return s.prober.ValidateAccessURL(ctx, sub.AccessURL), nil
}

// Portal assembles the public self-service view for a username: the
// subscriber, its endpoint (when still present), payment history and the
// tenant support contact.
func (s *SubscriberService) Portal(ctx context.Context, username string) (*models.PortalView, error) {
	const op = "services.SubscriberService.Portal"

	sub, err := s.repo.GetSubscriberByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sub == nil {
		return nil, apperr.New(apperr.NotFound, "subscriber not found")
	}
	sub.Classify(time.Now())

	endpoint, err := s.endpoints.GetEndpoint(ctx, sub.EndpointID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	payments, err := s.payments.ListPaymentsBySubscriber(ctx, sub.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if payments == nil {
		payments = []*models.Payment{}
	}

	view := &models.PortalView{
		Subscriber: sub,
		Endpoint:   endpoint,
		Payments:   payments,
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if settings != nil {
		view.SupportPhone = settings.SupportPhone
	}
	return view, nil
}
