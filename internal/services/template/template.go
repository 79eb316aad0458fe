// Package services implements the message template store: plain CRUD over
// reusable notification texts.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/models"
)

// TemplateRepository defines the storage methods for templates.
type TemplateRepository interface {
	CreateTemplate(ctx context.Context, t models.MessageTemplate) error
	ListTemplates(ctx context.Context) ([]*models.MessageTemplate, error)
	RemoveTemplate(ctx context.Context, id string) (int, error)
}

// TemplateService implements template operations over the repository.
type TemplateService struct {
	repo TemplateRepository
	log  *slog.Logger
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(repo TemplateRepository, log *slog.Logger) *TemplateService {
	return &TemplateService{
		repo: repo,
		log:  log,
	}
}

// Create stores a template and returns it.
func (s *TemplateService) Create(ctx context.Context, req models.TemplateCreateRequest) (*models.MessageTemplate, error) {
	t := models.MessageTemplate{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info("created template", slog.String("id", t.ID), slog.String("name", t.Name))
	return &t, nil
}

// List returns every stored template.
func (s *TemplateService) List(ctx context.Context) ([]*models.MessageTemplate, error) {
	return s.repo.ListTemplates(ctx)
}

// Remove deletes a template.
func (s *TemplateService) Remove(ctx context.Context, id string) error {
	count, err := s.repo.RemoveTemplate(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "template not found")
	}
	return nil
}
