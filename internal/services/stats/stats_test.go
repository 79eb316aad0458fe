package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/criartebr/stream-panel/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CountSubscribers(ctx context.Context) (int, int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}
func (m *RepoMock) CountEndpoints(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type LedgerMock struct{ mock.Mock }

func (m *LedgerMock) TotalRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}
func (m *LedgerMock) Recent(ctx context.Context, limit int) ([]*models.Payment, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestStatsService_Summary(t *testing.T) {
	repo := new(RepoMock)
	ledger := new(LedgerMock)
	repo.On("CountSubscribers", mock.Anything).Return(10, 7, 4, nil).Once()
	repo.On("CountEndpoints", mock.Anything).Return(2, nil).Once()
	ledger.On("TotalRevenue", mock.Anything).Return(125.0, nil).Once()
	ledger.On("Recent", mock.Anything, RecentPaymentsLimit).Return([]*models.Payment{
		{ID: "pay-1", Amount: 50},
	}, nil).Once()

	svc := NewStatsService(repo, ledger, newNoopLogger())
	summary, err := svc.Summary(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 10, summary.TotalSubscribers)
	assert.Equal(t, 7, summary.ActiveSubscribers)
	assert.Equal(t, 4, summary.ExpiredSubscribers)
	assert.Equal(t, 2, summary.TotalEndpoints)
	assert.Equal(t, 125.0, summary.TotalRevenue)
	assert.Len(t, summary.RecentPayments, 1)
	repo.AssertExpectations(t)
	ledger.AssertExpectations(t)
}

func TestStatsService_Summary_EmptyLedger(t *testing.T) {
	repo := new(RepoMock)
	ledger := new(LedgerMock)
	repo.On("CountSubscribers", mock.Anything).Return(0, 0, 0, nil).Once()
	repo.On("CountEndpoints", mock.Anything).Return(0, nil).Once()
	ledger.On("TotalRevenue", mock.Anything).Return(0.0, nil).Once()
	ledger.On("Recent", mock.Anything, RecentPaymentsLimit).Return(nil, nil).Once()

	svc := NewStatsService(repo, ledger, newNoopLogger())
	summary, err := svc.Summary(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalRevenue)
	assert.NotNil(t, summary.RecentPayments)
	assert.Len(t, summary.RecentPayments, 0)
}

func TestStatsService_Summary_StorageError(t *testing.T) {
	repo := new(RepoMock)
	ledger := new(LedgerMock)
	repo.On("CountSubscribers", mock.Anything).Return(0, 0, 0, errors.New("db error")).Once()

	svc := NewStatsService(repo, ledger, newNoopLogger())
	_, err := svc.Summary(context.Background())
	assert.Error(t, err)
	ledger.AssertNotCalled(t, "TotalRevenue", mock.Anything)
}
