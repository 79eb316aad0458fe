// Package services implements the tenant settings singleton: lazy
// materialization of the default record and partial updates.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/criartebr/stream-panel/internal/models"
)

// SettingsRepository defines the storage methods for the settings record.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpsertSettings(ctx context.Context, st models.Settings) error
}

// SettingsService implements singleton access over the repository.
type SettingsService struct {
	repo SettingsRepository
	log  *slog.Logger
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo SettingsRepository, log *slog.Logger) *SettingsService {
	return &SettingsService{
		repo: repo,
		log:  log,
	}
}

// Get returns the settings record, writing the default one first when the
// tenant has never saved settings.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	const op = "services.SettingsService.Get"

	st, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if st != nil {
		return st, nil
	}

	st = models.DefaultSettings()
	if err := s.repo.UpsertSettings(ctx, *st); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("materialized default settings")
	return st, nil
}

// Update applies a partial patch on top of the current record and
// persists the merged view.
func (s *SettingsService) Update(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	const op = "services.SettingsService.Update"

	st, err := s.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if patch.SupportPhone != nil {
		st.SupportPhone = *patch.SupportPhone
	}
	if patch.WelcomeMessage != nil {
		st.WelcomeMessage = *patch.WelcomeMessage
	}
	if patch.GatewayEnabled != nil {
		st.GatewayEnabled = *patch.GatewayEnabled
	}
	if patch.GatewayURL != nil {
		st.GatewayURL = *patch.GatewayURL
	}
	if patch.GatewayInstance != nil {
		st.GatewayInstance = *patch.GatewayInstance
	}
	if patch.GatewayToken != nil {
		st.GatewayToken = *patch.GatewayToken
	}
	st.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpsertSettings(ctx, *st); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return st, nil
}
