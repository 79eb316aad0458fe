package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/lib/jwt"
	"github.com/criartebr/stream-panel/internal/lib/password"
	"github.com/criartebr/stream-panel/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) RegisterAdmin(ctx context.Context, admin models.Admin) (string, error) {
	args := m.Called(ctx, admin)
	return args.String(0), args.Error(1)
}
func (m *RepoMock) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Admin), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newMaker() jwt.Maker {
	return jwt.NewJWTMaker("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	t.Run("success returns a token", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").Return(nil, nil).Once()
		repo.On("RegisterAdmin", mock.Anything, mock.MatchedBy(func(a models.Admin) bool {
			return a.Email == "admin@example.com" &&
				a.PasswordHash != "" && a.PasswordHash != "secret123"
		})).Return("uid-1", nil).Once()

		svc := NewAuthService(repo, newMaker(), newNoopLogger())
		token, err := svc.Register(context.Background(), models.RegisterRequest{
			Email:    "admin@example.com",
			Name:     "Admin",
			Password: "secret123",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").
			Return(&models.Admin{Email: "admin@example.com"}, nil).Once()

		svc := NewAuthService(repo, newMaker(), newNoopLogger())
		_, err := svc.Register(context.Background(), models.RegisterRequest{
			Email:    "admin@example.com",
			Name:     "Admin",
			Password: "secret123",
		})
		assert.True(t, apperr.Is(err, apperr.Conflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	assert.NoError(t, err)
	admin := &models.Admin{Email: "admin@example.com", PasswordHash: hash}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").Return(admin, nil).Once()

		svc := NewAuthService(repo, newMaker(), newNoopLogger())
		token, err := svc.Login(context.Background(), models.LoginRequest{
			Email:    "admin@example.com",
			Password: "secret123",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").Return(admin, nil).Once()

		svc := NewAuthService(repo, newMaker(), newNoopLogger())
		_, err := svc.Login(context.Background(), models.LoginRequest{
			Email:    "admin@example.com",
			Password: "wrong",
		})
		assert.True(t, apperr.Is(err, apperr.Auth))
	})

	t.Run("unknown email fails the same way", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetAdminByEmail", mock.Anything, "nobody@example.com").Return(nil, nil).Once()

		svc := NewAuthService(repo, newMaker(), newNoopLogger())
		_, err := svc.Login(context.Background(), models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		assert.True(t, apperr.Is(err, apperr.Auth))
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	maker := newMaker()
	hash, err := password.GetHash("secret123")
	assert.NoError(t, err)
	admin := &models.Admin{Email: "admin@example.com", PasswordHash: hash}

	t.Run("round trip", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetAdminByEmail", mock.Anything, "admin@example.com").Return(admin, nil).Once()
		token, err := maker.GenerateToken("admin@example.com")
		assert.NoError(t, err)

		svc := NewAuthService(repo, maker, newNoopLogger())
		got, err := svc.Authenticate(context.Background(), token)
		assert.NoError(t, err)
		assert.Equal(t, "admin@example.com", got.Email)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(RepoMock), maker, newNoopLogger())
		_, err := svc.Authenticate(context.Background(), "not-a-token")
		assert.True(t, apperr.Is(err, apperr.Auth))
	})

	t.Run("deleted account", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetAdminByEmail", mock.Anything, "gone@example.com").Return(nil, nil).Once()
		token, err := maker.GenerateToken("gone@example.com")
		assert.NoError(t, err)

		svc := NewAuthService(repo, maker, newNoopLogger())
		_, err = svc.Authenticate(context.Background(), token)
		assert.True(t, apperr.Is(err, apperr.Auth))
	})
}
