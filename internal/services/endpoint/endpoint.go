// Package services implements the endpoint directory: CRUD over the
// content-delivery endpoints subscriber playlists point at, with a redis
// cache in front of single-endpoint reads.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/criartebr/stream-panel/internal/lib/apperr"
	"github.com/criartebr/stream-panel/internal/models"
)

// EndpointRepository defines the storage methods for endpoints.
type EndpointRepository interface {
	CreateEndpoint(ctx context.Context, e models.Endpoint) error
	GetEndpoint(ctx context.Context, id string) (*models.Endpoint, error)
	ListEndpoints(ctx context.Context) ([]*models.Endpoint, error)
	UpdateEndpoint(ctx context.Context, e models.Endpoint) (int, error)
	RemoveEndpoint(ctx context.Context, id string) (int, error)
}

// Cache describes the caching methods used for endpoint reads.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EndpointService implements directory operations over the repository.
type EndpointService struct {
	repo  EndpointRepository
	cache Cache
	log   *slog.Logger
}

// NewEndpointService creates a new EndpointService.
func NewEndpointService(repo EndpointRepository, cache Cache, log *slog.Logger) *EndpointService {
	return &EndpointService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create registers a delivery endpoint and returns it.
func (s *EndpointService) Create(ctx context.Context, req models.EndpointCreateRequest) (*models.Endpoint, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	e := models.Endpoint{
		ID:        uuid.NewString(),
		Title:     req.Title,
		URL:       req.URL,
		Active:    active,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateEndpoint(ctx, e); err != nil {
		return nil, err
	}
	s.log.Info("created endpoint", slog.String("id", e.ID))
	return &e, nil
}

// Get returns an endpoint by ID, reading through the cache.
func (s *EndpointService) Get(ctx context.Context, id string) (*models.Endpoint, error) {
	var cached *models.Endpoint
	cacheKey := fmt.Sprintf("endpoint:%s", id)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("cache read failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && cached != nil {
		return cached, nil
	}

	e, err := s.repo.GetEndpoint(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperr.New(apperr.NotFound, "endpoint not found")
	}
	if err := s.cache.Set(cacheKey, e, time.Hour); err != nil {
		s.log.Warn("failed to cache endpoint", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return e, nil
}

// List returns every registered endpoint.
func (s *EndpointService) List(ctx context.Context) ([]*models.Endpoint, error) {
	return s.repo.ListEndpoints(ctx)
}

// Update applies a partial patch: present fields override, absent fields
// stay as stored. The cache entry is refreshed with the merged row.
func (s *EndpointService) Update(ctx context.Context, id string, patch models.EndpointPatch) (*models.Endpoint, error) {
	existing, err := s.repo.GetEndpoint(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.New(apperr.NotFound, "endpoint not found")
	}

	merged := *existing
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.URL != nil {
		merged.URL = *patch.URL
	}
	if patch.Active != nil {
		merged.Active = *patch.Active
	}

	if _, err := s.repo.UpdateEndpoint(ctx, merged); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("endpoint:%s", id)
	if err := s.cache.Set(cacheKey, &merged, time.Hour); err != nil {
		s.log.Warn("failed to refresh endpoint cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return &merged, nil
}

// Remove deletes an endpoint. Subscribers keep their stale reference; the
// directory is only consulted when a subscriber is created or re-pointed.
func (s *EndpointService) Remove(ctx context.Context, id string) error {
	count, err := s.repo.RemoveEndpoint(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return apperr.New(apperr.NotFound, "endpoint not found")
	}
	cacheKey := fmt.Sprintf("endpoint:%s", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate endpoint cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}
