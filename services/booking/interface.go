package booking

import (
	"context"

	bookingRepo "pristine/database/repository/booking"
	serviceRepo "pristine/database/repository/service"
	userRepo "pristine/database/repository/user"
	"pristine/models"
	"pristine/services/notification"

	"go.uber.org/zap"
)

// WizardService drives the four-step booking flow:
// select service → booking details → payment → confirmation.
// Transitions are strictly linear; a step is only entered once the previous
// step's side effect has completed, and "back" moves one step at a time.
type WizardService interface {
	// Start creates a fresh session at the service-selection step.
	Start(ctx context.Context, userID string) (*models.WizardSession, error)
	// Get retrieves a session without mutating it.
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// SelectService stores the chosen service and advances to the details step.
	SelectService(ctx context.Context, sessionID, serviceID string) (*models.WizardSession, error)
	// SubmitDetails validates the form, creates the booking and advances to
	// the payment step. The input is corrected in place (time reset policy).
	SubmitDetails(ctx context.Context, sessionID string, input *models.BookingDetailsInput) (*models.WizardSession, error)
	// SubmitPayment branches on payment method. Non-redirect methods advance
	// to confirmation synchronously; the redirect method returns an approval
	// URL and leaves the session at the payment step pending return.
	SubmitPayment(ctx context.Context, sessionID string, req models.PaymentRequest) (*models.WizardSession, *models.PaymentResult, error)
	// CompleteRedirect is the separate entry point the gateway redirects back
	// to. It resolves the booking, completes the payment and, if the session
	// still exists, advances it to confirmation.
	CompleteRedirect(ctx context.Context, bookingID string) (*models.Booking, error)
	// FailRedirect records a canceled or failed gateway return.
	FailRedirect(ctx context.Context, bookingID, reason string) error
	// Back moves one step backwards (details→selection or payment→details),
	// clearing only the current step's error.
	Back(ctx context.Context, sessionID string) (*models.WizardSession, error)
	// Cancel discards the session.
	Cancel(ctx context.Context, sessionID string) error
}

// DefaultWizardService is the production WizardService.
type DefaultWizardService struct {
	Store       *WizardStore
	ServiceRepo serviceRepo.ServiceRepository
	BookingRepo bookingRepo.BookingRepository
	UserRepo    userRepo.UserRepository
	Payments    PaymentHandler
	Notifier    notification.NotificationService
	Logger      *zap.Logger
}
