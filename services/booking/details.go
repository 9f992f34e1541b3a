// File: services/booking/details.go
package booking

import (
	"context"
	"fmt"

	"pristine/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitDetails validates the booking-details form, creates the booking
// record and advances the session to the payment step. On any failure the
// session stays at the details step and the customer may resubmit.
func (s *DefaultWizardService) SubmitDetails(ctx context.Context, sessionID string, input *models.BookingDetailsInput) (*models.WizardSession, error) {
	if err := s.Store.AcquireLock(ctx, sessionID); err != nil {
		return nil, err
	}
	defer s.Store.ReleaseLock(ctx, sessionID)

	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepBookingDetails {
		return nil, NewStepError("booking details can only be submitted from the details step")
	}
	if session.SelectedService == nil {
		// Guard: a details submission without a selected service regresses
		// to selection rather than creating an orphan booking.
		session.Step = models.StepSelectService
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return nil, NewStepError("no service selected; returning to selection")
	}

	if verr := s.validateWithProfile(session.UserID, input); verr != nil {
		session.LastError = verr.Error()
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return session, verr
	}

	location, err := models.NewServiceLocation(input.AddressOption, input.Street, input.City)
	if err != nil {
		return nil, err
	}
	scheduledAt, err := ScheduledTime(*input)
	if err != nil {
		return nil, fmt.Errorf("failed to combine booking date and time: %w", err)
	}

	// The session carries the full service snapshot, so the booking embeds
	// it directly; if only an ID survived a session round trip the catalog
	// lookup restores the snapshot.
	svc := session.SelectedService
	if svc.Name == "" && svc.ID != "" {
		restored, lookupErr := s.ServiceRepo.GetByID(svc.ID)
		if lookupErr != nil {
			return nil, fmt.Errorf("failed to reconcile selected service: %w", lookupErr)
		}
		svc = restored
	}

	b := &models.Booking{
		ID:                  uuid.New().String(),
		Service:             *svc,
		CustomerID:          session.UserID,
		ScheduledAt:         scheduledAt,
		Frequency:           input.Frequency,
		SpecialInstructions: input.SpecialInstructions,
		Location:            location,
		Phone:               input.Phone,
		Status:              models.BookingStatusPending,
	}
	if err := s.BookingRepo.Create(b); err != nil {
		session.LastError = "failed to create booking"
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return session, err
	}

	session.Booking = b
	session.Step = models.StepPayment
	session.LastError = ""
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	if err := s.Store.IndexBooking(ctx, b.ID, session.SessionID); err != nil {
		s.Logger.Warn("failed to index booking session", zap.Error(err))
	}

	s.Logger.Info("booking created",
		zap.String("booking", b.ID),
		zap.String("service", b.Service.Name),
		zap.String("session", sessionID))
	return session, nil
}

// validateWithProfile runs the declarative schema plus the profile-dependent
// rule: the saved-address option requires an address on file.
func (s *DefaultWizardService) validateWithProfile(userID string, input *models.BookingDetailsInput) *ValidationError {
	verr := ValidateDetails(input)

	if input.AddressOption == models.LocationSaved {
		user, err := s.UserRepo.GetByID(userID)
		if err != nil || user.SavedAddress == nil {
			if verr == nil {
				verr = &ValidationError{Fields: map[string]string{}}
			}
			if _, seen := verr.Fields["addressOption"]; !seen {
				verr.Fields["addressOption"] = "no saved address on your profile; enter a new address"
			}
		}
	}
	return verr
}
