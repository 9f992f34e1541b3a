// File: services/booking/wizardPayment.go
package booking

import (
	"context"

	"pristine/models"

	"go.uber.org/zap"
)

// SubmitPayment runs the payment step. On success the session advances to
// confirmation, except for the redirect method where the browser navigates
// away and the advance happens in CompleteRedirect. On failure the session
// stays at the payment step so the customer can pick another method.
func (s *DefaultWizardService) SubmitPayment(ctx context.Context, sessionID string, req models.PaymentRequest) (*models.WizardSession, *models.PaymentResult, error) {
	if err := s.Store.AcquireLock(ctx, sessionID); err != nil {
		return nil, nil, err
	}
	defer s.Store.ReleaseLock(ctx, sessionID)

	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Step != models.StepPayment {
		return nil, nil, NewStepError("payment can only be submitted from the payment step")
	}
	if session.Booking == nil {
		return nil, nil, NewStepError("no booking to pay for; complete the details step first")
	}

	req.BookingID = session.Booking.ID
	result, err := s.Payments.ProcessPayment(ctx, session.Booking, req)
	if err != nil {
		session.LastError = "payment failed"
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			return nil, nil, saveErr
		}
		return session, nil, err
	}

	if result.RedirectRequired {
		session.PendingRedirect = true
		session.LastError = ""
		if err := s.Store.Save(ctx, session); err != nil {
			return nil, nil, err
		}
		return session, result, nil
	}

	session.Step = models.StepConfirmation
	session.PendingRedirect = false
	session.LastError = ""
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, nil, err
	}

	s.notifyBookingPlaced(ctx, session.Booking)
	return session, result, nil
}

// CompleteRedirect resolves the booking the gateway redirected back for,
// captures the payment and advances the originating session if it still
// exists. A session lost to expiry is fine: the booking and transaction are
// the durable record.
func (s *DefaultWizardService) CompleteRedirect(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.BookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if _, err := s.Payments.CompleteRedirect(ctx, bookingID); err != nil {
		return nil, err
	}

	if sessionID, idxErr := s.Store.SessionForBooking(ctx, bookingID); idxErr == nil {
		if session, getErr := s.Store.Get(ctx, sessionID); getErr == nil {
			session.Step = models.StepConfirmation
			session.PendingRedirect = false
			session.LastError = ""
			if saveErr := s.Store.Save(ctx, session); saveErr != nil {
				s.Logger.Warn("failed to advance session after redirect", zap.Error(saveErr))
			}
		}
	}

	s.notifyBookingPlaced(ctx, b)
	return b, nil
}

// FailRedirect records a canceled or failed gateway return and surfaces the
// failure on the session's payment step.
func (s *DefaultWizardService) FailRedirect(ctx context.Context, bookingID, reason string) error {
	if _, err := s.Payments.FailRedirect(ctx, bookingID, reason); err != nil {
		return err
	}

	if sessionID, idxErr := s.Store.SessionForBooking(ctx, bookingID); idxErr == nil {
		if session, getErr := s.Store.Get(ctx, sessionID); getErr == nil {
			session.PendingRedirect = false
			session.LastError = "payment was not completed"
			if saveErr := s.Store.Save(ctx, session); saveErr != nil {
				s.Logger.Warn("failed to update session after redirect failure", zap.Error(saveErr))
			}
		}
	}
	return nil
}

func (s *DefaultWizardService) notifyBookingPlaced(ctx context.Context, b *models.Booking) {
	if s.Notifier == nil {
		return
	}
	err := s.Notifier.NotifyUser(ctx, b.CustomerID, "Booking received",
		"Your "+b.Service.Name+" booking is in. We'll confirm your cleaner shortly.",
		map[string]string{"bookingId": b.ID})
	if err != nil {
		s.Logger.Warn("failed to send booking notification", zap.Error(err))
	}
}
