// File: services/catalog/catalog.go
package catalog

import (
	"context"
	"encoding/json"
	"time"

	serviceRepo "pristine/database/repository/service"
	"pristine/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	catalogCacheKey = "catalog:active"
	catalogCacheTTL = 5 * time.Minute
)

// CatalogService serves the public service catalog and the admin catalog CRUD.
type CatalogService interface {
	// ListActive returns every service a customer can book.
	ListActive(ctx context.Context) ([]models.Service, error)
	// GetActive returns one bookable service.
	GetActive(ctx context.Context, id string) (*models.Service, error)
	// ListAll returns the full catalog including soft-deleted entries.
	ListAll(ctx context.Context) ([]models.Service, error)
	// Create adds a service to the catalog.
	Create(ctx context.Context, svc *models.Service) error
	// Update modifies a catalog entry.
	Update(ctx context.Context, svc *models.Service) error
	// Delete soft-deletes a catalog entry.
	Delete(ctx context.Context, id string) error
}

// DefaultCatalogService caches the active catalog in Redis; admin mutations
// invalidate the cache.
type DefaultCatalogService struct {
	Repo   serviceRepo.ServiceRepository
	Cache  *redis.Client
	Logger *zap.Logger
}

// ListActive returns every bookable service, serving a short-lived Redis
// cache when warm.
func (s *DefaultCatalogService) ListActive(ctx context.Context) ([]models.Service, error) {
	if data, err := s.Cache.Get(ctx, catalogCacheKey).Result(); err == nil {
		var services []models.Service
		if err := json.Unmarshal([]byte(data), &services); err == nil {
			return services, nil
		}
	}

	services, err := s.Repo.GetAllActive()
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(services); err == nil {
		if err := s.Cache.Set(ctx, catalogCacheKey, data, catalogCacheTTL).Err(); err != nil {
			s.Logger.Warn("failed to cache catalog", zap.Error(err))
		}
	}
	return services, nil
}

// GetActive returns one bookable service.
func (s *DefaultCatalogService) GetActive(ctx context.Context, id string) (*models.Service, error) {
	return s.Repo.GetActiveByID(id)
}

// ListAll returns the full catalog including soft-deleted entries.
func (s *DefaultCatalogService) ListAll(ctx context.Context) ([]models.Service, error) {
	return s.Repo.GetAll()
}

// Create adds a service to the catalog, minting an ID when the payload
// omits one.
func (s *DefaultCatalogService) Create(ctx context.Context, svc *models.Service) error {
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	if err := s.Repo.Create(svc); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Update modifies a catalog entry.
func (s *DefaultCatalogService) Update(ctx context.Context, svc *models.Service) error {
	if err := s.Repo.Update(svc); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete soft-deletes a catalog entry; existing booking snapshots are not
// affected.
func (s *DefaultCatalogService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.SoftDelete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *DefaultCatalogService) invalidate(ctx context.Context) {
	if err := s.Cache.Del(ctx, catalogCacheKey).Err(); err != nil {
		s.Logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
}
