package bookingRepo

import (
	"time"

	"pristine/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByCustomer retrieves bookings belonging to a customer, newest first.
	GetByCustomer(customerID string) ([]models.Booking, error)
	// List retrieves bookings matching the filter, newest first, along with
	// the total count before pagination.
	List(filter models.BookingFilter) ([]models.Booking, int64, error)
	// ListUpcoming retrieves non-terminal bookings scheduled inside the window.
	ListUpcoming(from, to time.Time) ([]models.Booking, error)
	// Create inserts a new booking record.
	Create(b *models.Booking) error
	// Update replaces an existing booking record.
	Update(b *models.Booking) error
	// SetStatus updates just the status of a booking.
	SetStatus(id string, status models.BookingStatus) error
}
