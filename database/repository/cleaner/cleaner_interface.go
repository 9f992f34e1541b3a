package cleanerRepo

import "pristine/models"

// CleanerRepository defines methods for cleaner roster data access.
type CleanerRepository interface {
	// GetByID retrieves a cleaner by its unique ID.
	GetByID(id string) (*models.Cleaner, error)
	// GetAllActive retrieves every active cleaner (the assignment roster).
	GetAllActive() ([]models.Cleaner, error)
	// Create inserts a new cleaner record.
	Create(c *models.Cleaner) error
	// Update modifies an existing cleaner record.
	Update(c *models.Cleaner) error
	// Deactivate removes a cleaner from the roster without deleting history.
	Deactivate(id string) error
}
