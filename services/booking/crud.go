// File: services/booking/crud.go
package booking

import (
	"errors"
	"fmt"
	"time"

	bookingRepo "pristine/database/repository/booking"
	"pristine/models"

	"go.uber.org/zap"
)

var (
	ErrNotBookingOwner    = errors.New("booking does not belong to this customer")
	ErrBookingNotEditable = errors.New("only pending bookings can be edited")
	ErrReviewNotAllowed   = errors.New("only completed bookings can be reviewed")
)

// CrudService covers the customer-facing booking operations outside the
// wizard: viewing, editing instructions, canceling and reviewing.
type CrudService interface {
	GetBooking(customerID, bookingID string) (*models.Booking, error)
	ListBookings(customerID string) ([]models.Booking, error)
	// UpdateDetails lets the customer amend instructions and phone while the
	// booking is still pending.
	UpdateDetails(customerID, bookingID, instructions, phone string) (*models.Booking, error)
	// CancelBooking cancels the customer's own pending booking.
	CancelBooking(customerID, bookingID string) (*models.Booking, error)
	// SubmitReview attaches a review to a completed booking.
	SubmitReview(customerID, bookingID string, rating int, comment string) (*models.Booking, error)
}

// DefaultCrudService is the production CrudService.
type DefaultCrudService struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}

func (s *DefaultCrudService) owned(customerID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrNotBookingOwner
	}
	return b, nil
}

// GetBooking retrieves one of the customer's bookings.
func (s *DefaultCrudService) GetBooking(customerID, bookingID string) (*models.Booking, error) {
	return s.owned(customerID, bookingID)
}

// ListBookings retrieves the customer's bookings, newest first.
func (s *DefaultCrudService) ListBookings(customerID string) ([]models.Booking, error) {
	return s.Repo.GetByCustomer(customerID)
}

// UpdateDetails lets the customer amend instructions and phone while the
// booking is still pending.
func (s *DefaultCrudService) UpdateDetails(customerID, bookingID, instructions, phone string) (*models.Booking, error) {
	b, err := s.owned(customerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusPending {
		return nil, ErrBookingNotEditable
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, fmt.Errorf("phone must be exactly 10 digits")
	}

	if instructions != "" {
		b.SpecialInstructions = instructions
	}
	if phone != "" {
		b.Phone = phone
	}
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// CancelBooking cancels the customer's own pending booking.
func (s *DefaultCrudService) CancelBooking(customerID, bookingID string) (*models.Booking, error) {
	b, err := s.owned(customerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, fmt.Errorf("booking %s is already %s", bookingID, b.Status)
	}

	b.Status = models.BookingStatusCanceled
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	s.Logger.Info("booking canceled by customer", zap.String("booking", bookingID))
	return b, nil
}

// SubmitReview attaches a review to a completed booking.
func (s *DefaultCrudService) SubmitReview(customerID, bookingID string, rating int, comment string) (*models.Booking, error) {
	b, err := s.owned(customerID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.BookingStatusCompleted {
		return nil, ErrReviewNotAllowed
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	b.Review = &models.Review{Rating: rating, Comment: comment, CreatedAt: time.Now()}
	if err := s.Repo.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}
