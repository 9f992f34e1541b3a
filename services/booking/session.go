// File: services/booking/session.go
package booking

import (
	"context"
	"time"

	"pristine/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Start creates a new wizard session at the service-selection step and stores
// it in Redis. The catalog itself is served separately; the session only
// tracks progress.
func (s *DefaultWizardService) Start(ctx context.Context, userID string) (*models.WizardSession, error) {
	session := &models.WizardSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		Step:      models.StepSelectService,
		CreatedAt: time.Now(),
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get retrieves a session without mutating it. Re-reading a session performs
// no writes, so re-rendering a step is free of side effects.
func (s *DefaultWizardService) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// A session at the details step with no service would render a broken
	// form; regress it to selection instead.
	if session.Step == models.StepBookingDetails && session.SelectedService == nil {
		session.Step = models.StepSelectService
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
	}
	return session, nil
}

// SelectService stores the chosen service and advances to the details step.
func (s *DefaultWizardService) SelectService(ctx context.Context, sessionID, serviceID string) (*models.WizardSession, error) {
	if err := s.Store.AcquireLock(ctx, sessionID); err != nil {
		return nil, err
	}
	defer s.Store.ReleaseLock(ctx, sessionID)

	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Step != models.StepSelectService {
		return nil, NewStepError("service can only be selected from the selection step")
	}

	svc, err := s.ServiceRepo.GetActiveByID(serviceID)
	if err != nil {
		session.LastError = "selected service is not available"
		if saveErr := s.Store.Save(ctx, session); saveErr != nil {
			return nil, saveErr
		}
		return nil, err
	}

	session.SelectedService = svc
	session.Step = models.StepBookingDetails
	session.LastError = ""
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back moves one step backwards. Only details→selection and payment→details
// are legal; confirmation is final. The current step's error is cleared,
// earlier state is kept.
func (s *DefaultWizardService) Back(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case models.StepBookingDetails:
		session.Step = models.StepSelectService
	case models.StepPayment:
		if session.PendingRedirect {
			return nil, NewStepError("a redirect payment is awaiting its gateway return")
		}
		session.Step = models.StepBookingDetails
	default:
		return nil, NewStepError("cannot go back from step " + session.Step.String())
	}
	session.LastError = ""

	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Cancel discards the session. In-flight bookings stay untouched; the
// session simply stops tracking them.
func (s *DefaultWizardService) Cancel(ctx context.Context, sessionID string) error {
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, session); err != nil {
		return err
	}
	s.Logger.Info("wizard session canceled", zap.String("session", sessionID))
	return nil
}
