package paymentRepo

import "pristine/models"

// PaymentRepository defines methods for transaction data access.
type PaymentRepository interface {
	// GetByID retrieves a transaction by its unique ID.
	GetByID(id string) (*models.Transaction, error)
	// GetByBooking retrieves the latest transaction for a booking.
	GetByBooking(bookingID string) (*models.Transaction, error)
	// Create inserts a new transaction record.
	Create(tx *models.Transaction) error
	// SetStatus updates the status (and optionally the gateway reference) of
	// a transaction.
	SetStatus(id string, status models.PaymentStatus, gatewayRef string) error
}
