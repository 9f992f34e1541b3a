package serviceRepo

import "pristine/models"

// ServiceRepository defines methods for catalog data access.
type ServiceRepository interface {
	// GetByID retrieves a service by its unique ID, including soft-deleted ones.
	GetByID(id string) (*models.Service, error)
	// GetActiveByID retrieves a service by ID, excluding soft-deleted ones.
	GetActiveByID(id string) (*models.Service, error)
	// GetAllActive retrieves every service not soft-deleted.
	GetAllActive() ([]models.Service, error)
	// GetAll retrieves every service including soft-deleted ones (admin view).
	GetAll() ([]models.Service, error)
	// Create inserts a new service record.
	Create(svc *models.Service) error
	// Update modifies an existing service record.
	Update(svc *models.Service) error
	// SoftDelete marks a service deleted without removing the document.
	SoftDelete(id string) error
}
