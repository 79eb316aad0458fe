// Package services implements the payment ledger: append-style recording
// of externally-reported transactions and the revenue aggregate.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/models"
)

// PaymentRepository defines the storage methods for payments.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, p models.Payment) error
	ListPayments(ctx context.Context) ([]*models.Payment, error)
	ListPaymentsBySubscriber(ctx context.Context, subscriberID string) ([]*models.Payment, error)
	RemovePayment(ctx context.Context, id string) (int, error)
	SumRevenue(ctx context.Context) (float64, error)
	RecentPayments(ctx context.Context, limit int) ([]*models.Payment, error)
}

// SubscriberReader resolves the subscriber reference at record time.
type SubscriberReader interface {
	GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error)
}

// DefaultMethod is used when a payment arrives without one.
const DefaultMethod = "pix"

// PaymentService implements ledger operations over the repository.
type PaymentService struct {
	repo        PaymentRepository
	subscribers SubscriberReader
	log         *slog.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(repo PaymentRepository, subscribers SubscriberReader, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:        repo,
		subscribers: subscribers,
		log:         log,
	}
}

// Create records a payment. The subscriber must exist at record time;
// the link is by identifier only and survives subscriber deletion.
func (s *PaymentService) Create(ctx context.Context, req models.PaymentCreateRequest) (*models.Payment, error) {
	const op = "services.PaymentService.Create"

	sub, err := s.subscribers.GetSubscriber(ctx, req.SubscriberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sub == nil {
		return nil, apperr.New(apperr.NotFound, "subscriber not found")
	}

	status := models.PaymentStatusCompleted
	if req.Status != nil {
		status = *req.Status
	}
	method := DefaultMethod
	if req.Method != nil {
		method = *req.Method
	}
	paidAt := time.Now().UTC()
	if req.PaidAt != nil {
		paidAt, err = time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			return nil, apperr.Wrap(apperr.Validation, "paid_at must be RFC 3339", err)
		}
	}

	p := models.Payment{
		ID:           uuid.NewString(),
		SubscriberID: req.SubscriberID,
		Amount:       req.Amount,
		Status:       status,
		Method:       method,
		Notes:        req.Notes,
		PaidAt:       paidAt,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("recorded payment", slog.String("id", p.ID), slog.String("subscriber_id", p.SubscriberID))
	return &p, nil
}

// List returns the full ledger, newest first.
func (s *PaymentService) List(ctx context.Context) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx)
}

// ListBySubscriber returns the ledger entries for one subscriber.
func (s *PaymentService) ListBySubscriber(ctx context.Context, subscriberID string) ([]*models.Payment, error) {
	return s.repo.ListPaymentsBySubscriber(ctx, subscriberID)
}

// Remove deletes a ledger entry.
func (s *PaymentService) Remove(ctx context.Context, id string) error {
	count, err := s.repo.RemovePayment(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "payment not found")
	}
	return nil
}

// TotalRevenue sums the amounts of completed payments.
func (s *PaymentService) TotalRevenue(ctx context.Context) (float64, error) {
	return s.repo.SumRevenue(ctx)
}

// Recent returns the limit most recent ledger entries, newest first.
func (s *PaymentService) Recent(ctx context.Context, limit int) ([]*models.Payment, error) {
	return s.repo.RecentPayments(ctx, limit)
}
