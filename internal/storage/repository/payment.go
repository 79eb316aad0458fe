package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/criartebr/stream-panel/internal/models"
)

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var (
		p     models.Payment
		notes sql.NullString
	)
	if err := row.Scan(&p.ID, &p.SubscriberID, &p.Amount, &p.Status, &p.Method,
		&notes, &p.PaidAt); err != nil {
		return nil, err
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	return &p, nil
}

// CreatePayment inserts a ledger entry.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) error {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (id, subscriber_id, amount, status, method, notes, paid_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.DB.ExecContext(ctx, query,
		p.ID, p.SubscriberID, p.Amount, p.Status, p.Method, p.Notes, p.PaidAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListPayments returns the full ledger ordered by payment time descending.
func (s *Storage) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subscriber_id, amount, status, method, notes, paid_at
			  FROM payments
			  ORDER BY paid_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPaymentsBySubscriber returns a subscriber's payment history, newest
// first.
func (s *Storage) ListPaymentsBySubscriber(ctx context.Context, subscriberID string) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsBySubscriber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subscriber_id, amount, status, method, notes, paid_at
			  FROM payments
			  WHERE subscriber_id = $1
			  ORDER BY paid_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RecentPayments returns the limit most recent ledger entries.
func (s *Storage) RecentPayments(ctx context.Context, limit int) ([]*models.Payment, error) {
	const op = "storage.RecentPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subscriber_id, amount, status, method, notes, paid_at
			  FROM payments
			  ORDER BY paid_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemovePayment deletes a ledger entry and returns the number of deleted
// rows.
func (s *Storage) RemovePayment(ctx context.Context, id string) (int, error) {
	const op = "storage.RemovePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM payments WHERE id = $1`
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

// SumRevenue returns the sum of completed payment amounts. Pending and
// failed entries stay visible in listings but never count here.
func (s *Storage) SumRevenue(ctx context.Context) (float64, error) {
	const op = "storage.SumRevenue"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM payments
			  WHERE status = $1`
	var total float64
	if err := s.DB.QueryRowContext(ctx, query, models.PaymentStatusCompleted).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
