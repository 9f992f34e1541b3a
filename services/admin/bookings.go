// File: services/admin/bookings.go
package admin

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "pristine/database/repository/booking"
	cleanerRepo "pristine/database/repository/cleaner"
	"pristine/models"
	"pristine/services/notification"

	"go.uber.org/zap"
)

var ErrAssignmentNotAllowed = errors.New("cleaner assignment is only allowed while a booking is pending or confirmed")

// BookingPage is one page of the admin booking list.
type BookingPage struct {
	Bookings []models.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// AdminBookingService drives the admin assignment workflow.
type AdminBookingService interface {
	// ListBookings returns a filtered, paginated page of bookings.
	ListBookings(ctx context.Context, filter models.BookingFilter) (*BookingPage, error)
	// AssignCleaner assigns (or reassigns) a cleaner and returns the updated
	// record plus the success message shown in the dashboard notification.
	AssignCleaner(ctx context.Context, bookingID, cleanerID, notes string) (*models.Booking, string, error)
	// CancelBooking cancels a booking and returns the updated record plus
	// the success message.
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, string, error)
}

// DefaultAdminBookingService is the production AdminBookingService.
type DefaultAdminBookingService struct {
	BookingRepo bookingRepo.BookingRepository
	CleanerRepo cleanerRepo.CleanerRepository
	View        *DashboardView
	Notifier    notification.NotificationService
	Logger      *zap.Logger
}

// ListBookings returns a filtered, paginated page of bookings and refreshes
// the dashboard view cache with the first page.
func (s *DefaultAdminBookingService) ListBookings(ctx context.Context, filter models.BookingFilter) (*BookingPage, error) {
	bookings, total, err := s.BookingRepo.List(filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	if page == 1 && filter.Status == "" && filter.DateFrom.IsZero() && filter.DateTo.IsZero() {
		if err := s.View.Store(ctx, bookings); err != nil {
			s.Logger.Warn("failed to cache dashboard view", zap.Error(err))
		}
	}

	return &BookingPage{Bookings: bookings, Total: total, Page: page, PageSize: pageSize}, nil
}

// AssignCleaner assigns (or reassigns) a cleaner. The status guard is
// enforced here, not just hidden in the dashboard UI.
func (s *DefaultAdminBookingService) AssignCleaner(ctx context.Context, bookingID, cleanerID, notes string) (*models.Booking, string, error) {
	if cleanerID == "" {
		return nil, "", errors.New("a cleaner must be selected")
	}

	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	if !b.AssignmentAllowed() {
		return nil, "", ErrAssignmentNotAllowed
	}

	cleaner, err := s.CleanerRepo.GetByID(cleanerID)
	if err != nil {
		return nil, "", err
	}
	if !cleaner.Active {
		return nil, "", fmt.Errorf("cleaner %s is not active", cleanerID)
	}

	ref := cleaner.Ref()
	b.AssignedCleaner = &ref
	b.CleanerNotes = notes
	// An assignment confirms a pending booking.
	if b.Status == models.BookingStatusPending {
		b.Status = models.BookingStatusConfirmed
	}
	if err := s.BookingRepo.Update(b); err != nil {
		return nil, "", err
	}

	if err := s.View.Apply(ctx, *b); err != nil {
		s.Logger.Warn("failed to update dashboard view", zap.Error(err))
	}
	s.notify(ctx, b.CustomerID, "Cleaner assigned",
		cleaner.Name+" will take care of your "+b.Service.Name+" booking.", b.ID)

	msg := fmt.Sprintf("Cleaner %s assigned to booking", cleaner.Name)
	s.Logger.Info("cleaner assigned",
		zap.String("booking", b.ID),
		zap.String("cleaner", cleanerID))
	return b, msg, nil
}

// CancelBooking cancels a booking under the same status guard as assignment.
func (s *DefaultAdminBookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, string, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, "", err
	}
	if !b.AssignmentAllowed() {
		return nil, "", ErrAssignmentNotAllowed
	}

	b.Status = models.BookingStatusCanceled
	if err := s.BookingRepo.Update(b); err != nil {
		return nil, "", err
	}

	if err := s.View.Apply(ctx, *b); err != nil {
		s.Logger.Warn("failed to update dashboard view", zap.Error(err))
	}
	s.notify(ctx, b.CustomerID, "Booking canceled",
		"Your "+b.Service.Name+" booking was canceled.", b.ID)

	s.Logger.Info("booking canceled by admin", zap.String("booking", b.ID))
	return b, "Booking canceled successfully", nil
}

func (s *DefaultAdminBookingService) notify(ctx context.Context, userID, title, body, bookingID string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyUser(ctx, userID, title, body, map[string]string{"bookingId": bookingID}); err != nil {
		s.Logger.Warn("failed to send notification", zap.Error(err))
	}
}
