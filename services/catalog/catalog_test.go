// File: services/catalog/catalog_test.go
package catalog

import (
	"context"
	"fmt"
	"testing"

	"pristine/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubServiceRepo keeps the catalog in memory for service tests.
type stubServiceRepo struct {
	services map[string]*models.Service
}

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: map[string]*models.Service{}}
}

func (r *stubServiceRepo) GetByID(id string) (*models.Service, error) {
	if svc, ok := r.services[id]; ok {
		return svc, nil
	}
	return nil, fmt.Errorf("service with id %s not found", id)
}

func (r *stubServiceRepo) GetActiveByID(id string) (*models.Service, error) {
	if svc, ok := r.services[id]; ok && !svc.IsDeleted {
		return svc, nil
	}
	return nil, fmt.Errorf("service with id %s not found", id)
}

func (r *stubServiceRepo) GetAllActive() ([]models.Service, error) {
	var out []models.Service
	for _, svc := range r.services {
		if !svc.IsDeleted {
			out = append(out, *svc)
		}
	}
	return out, nil
}

func (r *stubServiceRepo) GetAll() ([]models.Service, error) {
	var out []models.Service
	for _, svc := range r.services {
		out = append(out, *svc)
	}
	return out, nil
}

func (r *stubServiceRepo) Create(svc *models.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *stubServiceRepo) Update(svc *models.Service) error {
	r.services[svc.ID] = svc
	return nil
}

func (r *stubServiceRepo) SoftDelete(id string) error {
	svc, ok := r.services[id]
	if !ok {
		return fmt.Errorf("service with id %s not found", id)
	}
	svc.IsDeleted = true
	return nil
}

func catalogFixture(t *testing.T) (*DefaultCatalogService, *stubServiceRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	repo := newStubServiceRepo()
	svc := &DefaultCatalogService{
		Repo:   repo,
		Cache:  redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		Logger: zap.NewNop(),
	}
	return svc, repo
}

func TestCatalogCreateMintsIDWhenMissing(t *testing.T) {
	catalog, repo := catalogFixture(t)
	ctx := context.Background()

	svc := &models.Service{Name: "Window Cleaning", BasePrice: 45}
	require.NoError(t, catalog.Create(ctx, svc))

	require.NotEmpty(t, svc.ID)
	stored, err := repo.GetActiveByID(svc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Window Cleaning", stored.Name)

	fetched, err := catalog.GetActive(ctx, svc.ID)
	require.NoError(t, err)
	assert.Equal(t, svc.ID, fetched.ID)
}

func TestCatalogCreateKeepsProvidedID(t *testing.T) {
	catalog, _ := catalogFixture(t)

	svc := &models.Service{ID: "svc-1", Name: "Deep Cleaning", BasePrice: 120}
	require.NoError(t, catalog.Create(context.Background(), svc))

	assert.Equal(t, "svc-1", svc.ID)
}

func TestCatalogMutationsInvalidateCache(t *testing.T) {
	catalog, repo := catalogFixture(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(&models.Service{ID: "svc-1", Name: "Deep Cleaning"}))

	// Warm the cache, then mutate; the next listing must see the change.
	first, err := catalog.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	require.NoError(t, catalog.Create(ctx, &models.Service{Name: "Move-Out Cleaning"}))

	second, err := catalog.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}
