// File: services/admin/cleaners.go
package admin

import (
	"context"
	"errors"

	cleanerRepo "pristine/database/repository/cleaner"
	"pristine/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CleanerService manages the cleaner roster the assignment modal lists.
type CleanerService interface {
	ListCleaners(ctx context.Context) ([]models.Cleaner, error)
	CreateCleaner(ctx context.Context, name, email, phone string) (*models.Cleaner, error)
	UpdateCleaner(ctx context.Context, c *models.Cleaner) (*models.Cleaner, error)
	DeactivateCleaner(ctx context.Context, id string) error
}

// DefaultCleanerService is the production CleanerService.
type DefaultCleanerService struct {
	Repo   cleanerRepo.CleanerRepository
	Logger *zap.Logger
}

// ListCleaners returns the active roster.
func (s *DefaultCleanerService) ListCleaners(ctx context.Context) ([]models.Cleaner, error) {
	return s.Repo.GetAllActive()
}

// CreateCleaner adds a cleaner to the roster.
func (s *DefaultCleanerService) CreateCleaner(ctx context.Context, name, email, phone string) (*models.Cleaner, error) {
	if name == "" || email == "" {
		return nil, errors.New("cleaner name and email are required")
	}
	c := &models.Cleaner{
		ID:     uuid.New().String(),
		Name:   name,
		Email:  email,
		Phone:  phone,
		Active: true,
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	s.Logger.Info("cleaner added", zap.String("cleaner", c.ID))
	return c, nil
}

// UpdateCleaner modifies a roster entry.
func (s *DefaultCleanerService) UpdateCleaner(ctx context.Context, c *models.Cleaner) (*models.Cleaner, error) {
	if err := s.Repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeactivateCleaner removes a cleaner from the roster; assigned history on
// bookings is untouched.
func (s *DefaultCleanerService) DeactivateCleaner(ctx context.Context, id string) error {
	return s.Repo.Deactivate(id)
}
