// Package services implements the dashboard aggregator: subscriber and
// endpoint counters, completed revenue and the recent-payments strip, all
// computed from current state on every call.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/criartebr/stream-panel/internal/models"
)

// RecentPaymentsLimit bounds the dashboard payment strip.
const RecentPaymentsLimit = 5

// StatsRepository defines the count queries behind the dashboard.
type StatsRepository interface {
	CountSubscribers(ctx context.Context) (total, active, expired int, err error)
	CountEndpoints(ctx context.Context) (int, error)
}

// Ledger supplies the payment aggregates.
type Ledger interface {
	TotalRevenue(ctx context.Context) (float64, error)
	Recent(ctx context.Context, limit int) ([]*models.Payment, error)
}

// StatsService composes the dashboard summary.
type StatsService struct {
	repo   StatsRepository
	ledger Ledger
	log    *slog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo StatsRepository, ledger Ledger, log *slog.Logger) *StatsService {
	return &StatsService{
		repo:   repo,
		ledger: ledger,
		log:    log,
	}
}

// Summary returns the dashboard figures. Active counts the administrative
// flag and expired counts the clock, so one subscriber can land in both.
func (s *StatsService) Summary(ctx context.Context) (*models.Stats, error) {
	const op = "services.StatsService.Summary"

	total, active, expired, err := s.repo.CountSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	endpoints, err := s.repo.CountEndpoints(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	revenue, err := s.ledger.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	recent, err := s.ledger.Recent(ctx, RecentPaymentsLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if recent == nil {
		recent = []*models.Payment{}
	}

	return &models.Stats{
		TotalSubscribers:   total,
		ActiveSubscribers:  active,
		ExpiredSubscribers: expired,
		TotalEndpoints:     endpoints,
		TotalRevenue:       revenue,
		RecentPayments:     recent,
	}, nil
}
