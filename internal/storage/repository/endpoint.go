package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/criartebr/stream-panel/internal/models"
)

// CreateEndpoint inserts a new delivery endpoint.
func (s *Storage) CreateEndpoint(ctx context.Context, e models.Endpoint) error {
	const op = "storage.CreateEndpoint"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO endpoints (id, title, url, active, created_at)
			  VALUES ($1, $2, $3, $4, $5)`
	_, err := s.DB.ExecContext(ctx, query, e.ID, e.Title, e.URL, e.Active, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetEndpoint returns an endpoint by ID, or nil when it does not exist.
func (s *Storage) GetEndpoint(ctx context.Context, id string) (*models.Endpoint, error) {
	const op = "storage.GetEndpoint"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, url, active, created_at
			  FROM endpoints WHERE id = $1`
	var e models.Endpoint
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&e.ID, &e.Title, &e.URL, &e.Active, &e.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}

// ListEndpoints returns all endpoints ordered by creation time.
func (s *Storage) ListEndpoints(ctx context.Context) ([]*models.Endpoint, error) {
	const op = "storage.ListEndpoints"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, url, active, created_at
			  FROM endpoints
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Endpoint
	for rows.Next() {
		var e models.Endpoint
		if err := rows.Scan(&e.ID, &e.Title, &e.URL, &e.Active, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateEndpoint writes the full endpoint row and returns the number of
// updated rows.
func (s *Storage) UpdateEndpoint(ctx context.Context, e models.Endpoint) (int, error) {
	const op = "storage.UpdateEndpoint"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE endpoints
			  SET title = $1, url = $2, active = $3
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, e.Title, e.URL, e.Active, e.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveEndpoint deletes an endpoint and returns the number of deleted
// rows. Subscribers pointing at it are left untouched.
func (s *Storage) RemoveEndpoint(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveEndpoint"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM endpoints WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountEndpoints returns the total number of endpoints.
func (s *Storage) CountEndpoints(ctx context.Context) (int, error) {
	const op = "storage.CountEndpoints"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM endpoints`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
