package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/criartebr/stream-panel/internal/models"
)

// GetSettings returns the tenant settings singleton, or nil when it has
// not been materialized yet.
func (s *Storage) GetSettings(ctx context.Context) (*models.Settings, error) {
	const op = "storage.GetSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, support_phone, welcome_message, gateway_enabled,
			      gateway_url, gateway_instance, gateway_token, updated_at
			  FROM settings WHERE id = $1`
	var st models.Settings
	row := s.DB.QueryRowContext(ctx, query, models.SettingsID)
	if err := row.Scan(&st.ID, &st.SupportPhone, &st.WelcomeMessage,
		&st.GatewayEnabled, &st.GatewayURL, &st.GatewayInstance,
		&st.GatewayToken, &st.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}

// UpsertSettings writes the settings singleton, creating it when absent.
func (s *Storage) UpsertSettings(ctx context.Context, st models.Settings) error {
	const op = "storage.UpsertSettings"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO settings (id, support_phone, welcome_message,
			      gateway_enabled, gateway_url, gateway_instance, gateway_token,
			      updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  ON CONFLICT (id) DO UPDATE
			  SET support_phone = $2, welcome_message = $3, gateway_enabled = $4,
			      gateway_url = $5, gateway_instance = $6, gateway_token = $7,
			      updated_at = $8`
	_, err := s.DB.ExecContext(ctx, query,
		st.ID, st.SupportPhone, st.WelcomeMessage, st.GatewayEnabled,
		st.GatewayURL, st.GatewayInstance, st.GatewayToken, st.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
