package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateSubscriber(ctx context.Context, sub models.Subscriber) error {
	return m.Called(ctx, sub).Error(0)
}
func (m *RepoMock) GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}
func (m *RepoMock) GetSubscriberByUsername(ctx context.Context, username string) (*models.Subscriber, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}
func (m *RepoMock) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscriber), args.Error(1)
}
func (m *RepoMock) UpdateSubscriber(ctx context.Context, sub models.Subscriber) (int, error) {
	args := m.Called(ctx, sub)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) RemoveSubscriber(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type EndpointReaderMock struct{ mock.Mock }

func (m *EndpointReaderMock) GetEndpoint(ctx context.Context, id string) (*models.Endpoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Endpoint), args.Error(1)
}

type PaymentReaderMock struct{ mock.Mock }

func (m *PaymentReaderMock) ListPaymentsBySubscriber(ctx context.Context, subscriberID string) ([]*models.Payment, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

type SettingsReaderMock struct{ mock.Mock }

func (m *SettingsReaderMock) GetSettings(ctx context.Context) (*models.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Settings), args.Error(1)
}

type ProberMock struct{ mock.Mock }

func (m *ProberMock) ValidateAccessURL(ctx context.Context, url string) models.ProbeResult {
	args := m.Called(ctx, url)
	return args.Get(0).(models.ProbeResult)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(r *RepoMock, e *EndpointReaderMock, p *PaymentReaderMock, s *SettingsReaderMock, pr *ProberMock) *SubscriberService {
	return NewSubscriberService(r, e, p, s, pr, newNoopLogger())
}

func TestSubscriberService_Create(t *testing.T) {
	endpoint := &models.Endpoint{
		ID:     "ep-1",
		Title:  "Main",
		URL:    "http://cdn.example.com",
		Active: true,
	}
	req := models.SubscriberCreateRequest{
		Username:   "joao",
		Password:   "s3cret",
		EndpointID: "ep-1",
		ExpiresAt:  time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, e *EndpointReaderMock)
		req        models.SubscriberCreateRequest
		wantKind   apperr.Kind
		wantErr    bool
	}{
		{
			name: "success with derived access url",
			setupMocks: func(r *RepoMock, e *EndpointReaderMock) {
				r.On("GetSubscriberByUsername", mock.Anything, "joao").Return(nil, nil).Once()
				e.On("GetEndpoint", mock.Anything, "ep-1").Return(endpoint, nil).Once()
				r.On("CreateSubscriber", mock.Anything, mock.MatchedBy(func(s models.Subscriber) bool {
					return s.AccessURL == "http://cdn.example.com/get.php?username=joao&password=s3cret&type=m3u_plus&output=mpegts" &&
						s.Active && s.PIN == "0000"
				})).Return(nil).Once()
			},
			req: req,
		},
		{
			name: "duplicate username",
			setupMocks: func(r *RepoMock, _ *EndpointReaderMock) {
				r.On("GetSubscriberByUsername", mock.Anything, "joao").
					Return(&models.Subscriber{Username: "joao"}, nil).Once()
			},
			req:      req,
			wantKind: apperr.Conflict,
			wantErr:  true,
		},
		{
			name: "endpoint does not resolve",
			setupMocks: func(r *RepoMock, e *EndpointReaderMock) {
				r.On("GetSubscriberByUsername", mock.Anything, "joao").Return(nil, nil).Once()
				e.On("GetEndpoint", mock.Anything, "ep-1").Return(nil, nil).Once()
			},
			req:      req,
			wantKind: apperr.NotFound,
			wantErr:  true,
		},
		{
			name: "bad expiry format",
			setupMocks: func(r *RepoMock, e *EndpointReaderMock) {
				r.On("GetSubscriberByUsername", mock.Anything, "joao").Return(nil, nil).Once()
				e.On("GetEndpoint", mock.Anything, "ep-1").Return(endpoint, nil).Once()
			},
			req: models.SubscriberCreateRequest{
				Username:   "joao",
				Password:   "s3cret",
				EndpointID: "ep-1",
				ExpiresAt:  "31/12/2026",
			},
			wantKind: apperr.Validation,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			endpoints := new(EndpointReaderMock)
			tt.setupMocks(repo, endpoints)
			svc := newService(repo, endpoints, new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

			sub, err := svc.Create(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperr.Is(err, tt.wantKind))
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, sub.ID)
				assert.Equal(t, "joao", sub.Username)
			}

			repo.AssertExpectations(t)
			endpoints.AssertExpectations(t)
		})
	}
}

func TestSubscriberService_Update(t *testing.T) {
	endpoint := &models.Endpoint{ID: "ep-1", URL: "http://cdn.example.com"}
	otherEndpoint := &models.Endpoint{ID: "ep-2", URL: "http://cdn2.example.com"}

	stored := func() *models.Subscriber {
		return &models.Subscriber{
			ID:         "sub-1",
			Username:   "joao",
			Password:   "old",
			EndpointID: "ep-1",
			AccessURL:  "http://cdn.example.com/get.php?username=joao&password=old&type=m3u_plus&output=mpegts",
			ExpiresAt:  time.Now().Add(24 * time.Hour).UTC(),
			Active:     true,
			PIN:        "0000",
		}
	}

	t.Run("password change rebuilds the access url", func(t *testing.T) {
		repo := new(RepoMock)
		endpoints := new(EndpointReaderMock)
		repo.On("GetSubscriber", mock.Anything, "sub-1").Return(stored(), nil).Once()
		endpoints.On("GetEndpoint", mock.Anything, "ep-1").Return(endpoint, nil).Once()
		repo.On("UpdateSubscriber", mock.Anything, mock.MatchedBy(func(s models.Subscriber) bool {
			return s.Password == "new" &&
				s.AccessURL == "http://cdn.example.com/get.php?username=joao&password=new&type=m3u_plus&output=mpegts"
		})).Return(1, nil).Once()
		svc := newService(repo, endpoints, new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

		newPass := "new"
		sub, err := svc.Update(context.Background(), "sub-1", models.SubscriberPatch{Password: &newPass})
		assert.NoError(t, err)
		assert.Contains(t, sub.AccessURL, "password=new")
		repo.AssertExpectations(t)
		endpoints.AssertExpectations(t)
	})

	t.Run("re-point rebuilds from the new endpoint", func(t *testing.T) {
		repo := new(RepoMock)
		endpoints := new(EndpointReaderMock)
		repo.On("GetSubscriber", mock.Anything, "sub-1").Return(stored(), nil).Once()
		endpoints.On("GetEndpoint", mock.Anything, "ep-2").Return(otherEndpoint, nil).Once()
		repo.On("UpdateSubscriber", mock.Anything, mock.MatchedBy(func(s models.Subscriber) bool {
			return s.EndpointID == "ep-2" &&
				s.AccessURL == "http://cdn2.example.com/get.php?username=joao&password=old&type=m3u_plus&output=mpegts"
		})).Return(1, nil).Once()
		svc := newService(repo, endpoints, new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

		target := "ep-2"
		_, err := svc.Update(context.Background(), "sub-1", models.SubscriberPatch{EndpointID: &target})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
		endpoints.AssertExpectations(t)
	})

	t.Run("re-point to a missing endpoint is rejected", func(t *testing.T) {
		repo := new(RepoMock)
		endpoints := new(EndpointReaderMock)
		repo.On("GetSubscriber", mock.Anything, "sub-1").Return(stored(), nil).Once()
		endpoints.On("GetEndpoint", mock.Anything, "ep-9").Return(nil, nil).Once()
		svc := newService(repo, endpoints, new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

		target := "ep-9"
		_, err := svc.Update(context.Background(), "sub-1", models.SubscriberPatch{EndpointID: &target})
		assert.True(t, apperr.Is(err, apperr.NotFound))
		repo.AssertExpectations(t)
	})

	t.Run("vanished stored endpoint keeps the stale url", func(t *testing.T) {
		repo := new(RepoMock)
		endpoints := new(EndpointReaderMock)
		repo.On("GetSubscriber", mock.Anything, "sub-1").Return(stored(), nil).Once()
		endpoints.On("GetEndpoint", mock.Anything, "ep-1").Return(nil, nil).Once()
		repo.On("UpdateSubscriber", mock.Anything, mock.MatchedBy(func(s models.Subscriber) bool {
			return s.Password == "new" && s.AccessURL == stored().AccessURL
		})).Return(1, nil).Once()
		svc := newService(repo, endpoints, new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

		newPass := "new"
		_, err := svc.Update(context.Background(), "sub-1", models.SubscriberPatch{Password: &newPass})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscriber", mock.Anything, "sub-1").Return(stored(), nil).Once()
		svc := newService(repo, new(EndpointReaderMock), new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

		sub, err := svc.Update(context.Background(), "sub-1", models.SubscriberPatch{})
		assert.NoError(t, err)
		assert.Equal(t, "joao", sub.Username)
		repo.AssertNotCalled(t, "UpdateSubscriber", mock.Anything, mock.Anything)
	})

	t.Run("missing subscriber", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetSubscriber", mock.Anything, "sub-9").Return(nil, nil).Once()
		svc := newService(repo, new(EndpointReaderMock), new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

		_, err := svc.Update(context.Background(), "sub-9", models.SubscriberPatch{})
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})
}

func TestSubscriberService_Remove(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("RemoveSubscriber", mock.Anything, "sub-1").Return(1, nil).Once()
		svc := newService(repo, new(EndpointReaderMock), new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

		assert.NoError(t, svc.Remove(context.Background(), "sub-1"))
	})

	t.Run("repeated delete reports not found", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("RemoveSubscriber", mock.Anything, "sub-1").Return(0, nil).Once()
		svc := newService(repo, new(EndpointReaderMock), new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

		err := svc.Remove(context.Background(), "sub-1")
		assert.True(t, apperr.Is(err, apperr.NotFound))
	})
}

func TestSubscriberService_ValidateAccess(t *testing.T) {
	repo := new(RepoMock)
	prober := new(ProberMock)
	sub := &models.Subscriber{ID: "sub-1", AccessURL: "http://cdn.example.com/get.php"}
	repo.On("GetSubscriber", mock.Anything, "sub-1").Return(sub, nil).Once()
	prober.On("ValidateAccessURL", mock.Anything, sub.AccessURL).
		Return(models.ProbeResult{Reachable: true, Detail: "playlist is accessible"}).Once()
	svc := newService(repo, new(EndpointReaderMock), new(PaymentReaderMock), new(SettingsReaderMock), prober)

	res, err := svc.ValidateAccess(context.Background(), "sub-1")
	assert.NoError(t, err)
	assert.True(t, res.Reachable)
	prober.AssertExpectations(t)
}

func TestSubscriberService_Portal(t *testing.T) {
	repo := new(RepoMock)
	endpoints := new(EndpointReaderMock)
	payments := new(PaymentReaderMock)
	settings := new(SettingsReaderMock)

	sub := &models.Subscriber{
		ID:         "sub-1",
		Username:   "joao",
		EndpointID: "ep-1",
		ExpiresAt:  time.Now().Add(-time.Hour).UTC(),
	}
	repo.On("GetSubscriberByUsername", mock.Anything, "joao").Return(sub, nil).Once()
	endpoints.On("GetEndpoint", mock.Anything, "ep-1").Return(&models.Endpoint{ID: "ep-1"}, nil).Once()
	payments.On("ListPaymentsBySubscriber", mock.Anything, "sub-1").Return(nil, nil).Once()
	settings.On("GetSettings", mock.Anything).
		Return(&models.Settings{SupportPhone: "5511999990000"}, nil).Once()

	svc := newService(repo, endpoints, payments, settings, new(ProberMock))
	view, err := svc.Portal(context.Background(), "joao")
	assert.NoError(t, err)
	assert.True(t, view.Subscriber.Expired)
	assert.Equal(t, "5511999990000", view.SupportPhone)
	assert.NotNil(t, view.Payments)
	assert.Len(t, view.Payments, 0)
}

func TestSubscriberService_List(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListSubscribers", mock.Anything).Return([]*models.Subscriber{
		{ID: "a", ExpiresAt: time.Now().Add(-time.Hour).UTC()},
		{ID: "b", ExpiresAt: time.Now().Add(time.Hour).UTC()},
	}, nil).Once()
	svc := newService(repo, new(EndpointReaderMock), new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

	subs, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.True(t, subs[0].Expired)
	assert.False(t, subs[1].Expired)
}

func TestSubscriberService_Get_StorageError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriber", mock.Anything, "sub-1").Return(nil, errors.New("db error")).Once()
	svc := newService(repo, new(EndpointReaderMock), new(PaymentReaderMock), new(SettingsReaderMock), new(ProberMock))

	_, err := svc.Get(context.Background(), "sub-1")
	assert.Error(t, err)
	assert.False(t, apperr.Is(err, apperr.NotFound))
}
