package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/criartebr/stream-panel/internal/models"
)

// RegisterAdmin stores a new admin account and returns its UID.
func (s *Storage) RegisterAdmin(ctx context.Context, admin models.Admin) (string, error) {
	const op = "storage.RegisterAdmin"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO admins (uid, email, name, password_hash, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid`
	var newID string
	if err := s.DB.QueryRowContext(ctx, query,
		admin.UID, admin.Email, admin.Name, admin.PasswordHash,
		admin.CreatedAt).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetAdminByEmail returns an admin account by email, or nil when absent.
func (s *Storage) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	const op = "storage.GetAdminByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, email, name, password_hash, created_at
			  FROM admins
			  WHERE email = $1`
	a := &models.Admin{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&a.UID, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}
