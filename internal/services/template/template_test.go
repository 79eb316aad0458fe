package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateTemplate(ctx context.Context, t models.MessageTemplate) error {
	return m.Called(ctx, t).Error(0)
}
func (m *RepoMock) ListTemplates(ctx context.Context) ([]*models.MessageTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MessageTemplate), args.Error(1)
}
func (m *RepoMock) RemoveTemplate(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestTemplateService_Create(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateTemplate", mock.Anything, mock.MatchedBy(func(tpl models.MessageTemplate) bool {
		return tpl.Name == "expiry" && tpl.Message == "sua conta expira" && !tpl.CreatedAt.IsZero()
	})).Return(nil).Once()

	svc := NewTemplateService(repo, newNoopLogger())
	tpl, err := svc.Create(context.Background(), models.TemplateCreateRequest{
		Name:    "expiry",
		Message: "sua conta expira",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)
	repo.AssertExpectations(t)
}

func TestTemplateService_Remove(t *testing.T) {
	repo := new(RepoMock)
	repo.On("RemoveTemplate", mock.Anything, "tpl-1").Return(0, nil).Once()

	svc := NewTemplateService(repo, newNoopLogger())
	err := svc.Remove(context.Background(), "tpl-1")
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
