// Package services implements admin authentication: account registration,
// credential login and bearer-token verification for the protected API.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/lib/jwt"
	"github.com/criartebr/stream-panel/internal/lib/password"
	"github.com/criartebr/stream-panel/internal/models"
)

// AdminRepository defines the storage methods for admin accounts.
type AdminRepository interface {
	RegisterAdmin(ctx context.Context, admin models.Admin) (string, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// AuthService issues and checks admin sessions.
type AuthService struct {
	repo  AdminRepository
	maker jwt.Maker
	log   *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo AdminRepository, maker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		repo:  repo,
		maker: maker,
		log:   log,
	}
}

// Register creates an admin account with a bcrypt-hashed password and
// returns a fresh session token.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (string, error) {
	const op = "services.AuthService.Register"

	existing, err := s.repo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		return "", apperr.New(apperr.Conflict, "email already registered")
	}

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	admin := models.Admin{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.repo.RegisterAdmin(ctx, admin); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("registered admin", slog.String("email", admin.Email))

	token, err := s.maker.GenerateToken(admin.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Login checks the credentials and returns a session token. A bad email
// and a bad password produce the same classified failure.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	const op = "services.AuthService.Login"

	admin, err := s.repo.GetAdminByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if admin == nil {
		return "", apperr.New(apperr.Auth, "invalid credentials")
	}
	if err := password.CompareHash(admin.PasswordHash, req.Password); err != nil {
		return "", apperr.New(apperr.Auth, "invalid credentials")
	}

	token, err := s.maker.GenerateToken(admin.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// AdminByEmail returns the admin account for an email.
func (s *AuthService) AdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const op = "services.AuthService.AdminByEmail"

	admin, err := s.repo.GetAdminByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if admin == nil {
		return nil, apperr.New(apperr.Auth, "account no longer exists")
	}
	return admin, nil
}

// Authenticate validates a bearer token and returns the admin it names.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	const op = "services.AuthService.Authenticate"

	claims, err := s.maker.ParseToken(token)
	if err != nil {
		return nil, apperr.Wrap(apperr.Auth, "invalid token", err)
	}
	admin, err := s.repo.GetAdminByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if admin == nil {
		return nil, apperr.New(apperr.Auth, "account no longer exists")
	}
	return admin, nil
}
