package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/criartebr/stream-panel/internal/models"
)

const subscriberColumns = `id, username, password, endpoint_id, name, phone,
		mac_address, access_url, created_at, expires_at, expire_date, active,
		pin, plan_price, pay_url`

func scanSubscriber(row interface{ Scan(...any) error }) (*models.Subscriber, error) {
	var (
		sub                    models.Subscriber
		name, phone, mac       sql.NullString
		payURL                 sql.NullString
		expiresAt, expireDate  sql.NullTime
		planPrice              sql.NullFloat64
	)
	if err := row.Scan(&sub.ID, &sub.Username, &sub.Password, &sub.EndpointID,
		&name, &phone, &mac, &sub.AccessURL, &sub.CreatedAt,
		&expiresAt, &expireDate, &sub.Active, &sub.PIN, &planPrice, &payURL); err != nil {
		return nil, err
	}
	if name.Valid {
		sub.Name = &name.String
	}
	if phone.Valid {
		sub.Phone = &phone.String
	}
	if mac.Valid {
		sub.MACAddress = &mac.String
	}
	if payURL.Valid {
		sub.PayURL = &payURL.String
	}
	if expiresAt.Valid {
		sub.ExpiresAt = expiresAt.Time
	}
	if expireDate.Valid {
		sub.LegacyExpireDate = &expireDate.Time
	}
	if planPrice.Valid {
		sub.PlanPrice = &planPrice.Float64
	}
	sub.UpgradeSchema()
	return &sub, nil
}

// CreateSubscriber inserts a new subscriber row. The username column has a
// unique index; a duplicate insert fails.
func (s *Storage) CreateSubscriber(ctx context.Context, sub models.Subscriber) error {
	const op = "storage.CreateSubscriber"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscribers (id, username, password, endpoint_id, name,
			      phone, mac_address, access_url, created_at, expires_at, active,
			      pin, plan_price, pay_url)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := s.DB.ExecContext(ctx, query,
		sub.ID, sub.Username, sub.Password, sub.EndpointID, sub.Name, sub.Phone,
		sub.MACAddress, sub.AccessURL, sub.CreatedAt, sub.ExpiresAt, sub.Active,
		sub.PIN, sub.PlanPrice, sub.PayURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscriber returns a subscriber by ID, or nil when absent.
func (s *Storage) GetSubscriber(ctx context.Context, id string) (*models.Subscriber, error) {
	const op = "storage.GetSubscriber"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id = $1`
	sub, err := scanSubscriber(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// GetSubscriberByUsername returns a subscriber by username, or nil when
// absent.
func (s *Storage) GetSubscriberByUsername(ctx context.Context, username string) (*models.Subscriber, error) {
	const op = "storage.GetSubscriberByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE username = $1`
	sub, err := scanSubscriber(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListSubscribers returns all subscribers ordered by creation time.
func (s *Storage) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	const op = "storage.ListSubscribers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriberColumns + ` FROM subscribers ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscriber writes the full merged subscriber row and returns the
// number of updated rows. Read-modify-write: concurrent updates to the
// same row race and the later write wins.
func (s *Storage) UpdateSubscriber(ctx context.Context, sub models.Subscriber) (int, error) {
	const op = "storage.UpdateSubscriber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscribers
			  SET username = $1, password = $2, endpoint_id = $3, name = $4,
			      phone = $5, mac_address = $6, access_url = $7, expires_at = $8,
			      active = $9, pin = $10, plan_price = $11, pay_url = $12
			  WHERE id = $13`
	result, err := s.DB.ExecContext(ctx, query,
		sub.Username, sub.Password, sub.EndpointID, sub.Name, sub.Phone,
		sub.MACAddress, sub.AccessURL, sub.ExpiresAt, sub.Active, sub.PIN,
		sub.PlanPrice, sub.PayURL, sub.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSubscriber deletes a subscriber and returns the number of deleted
// rows.
func (s *Storage) RemoveSubscriber(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveSubscriber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscribers WHERE id = $1`
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

// CountSubscribers returns total, administratively active and clock-expired
// subscriber counts in one round trip. Expired compares against the query
// clock, independent of the active flag. Rows with neither expiry column
// set count as expired, matching Classify on a zero expiry.
func (s *Storage) CountSubscribers(ctx context.Context) (total, active, expired int, err error) {
	const op = "storage.CountSubscribers"
	select {
	case <-ctx.Done():
		return 0, 0, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      COUNT(*),
			      COUNT(*) FILTER (WHERE active),
			      COUNT(*) FILTER (WHERE COALESCE(expires_at, expire_date, '-infinity'::timestamptz) < now())
			  FROM subscribers`
	if err := s.DB.QueryRowContext(ctx, query).Scan(&total, &active, &expired); err != nil {
		return 0, 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, active, expired, nil
}
