package booking

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound reports a wizard session that never existed or whose
// TTL has lapsed.
var ErrSessionNotFound = errors.New("wizard session not found or expired")

// StepError reports a wizard operation attempted from the wrong step or
// without the prior step's side effect completed.
type StepError struct {
	Code    string
	Message string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewStepError(msg string) error {
	return &StepError{
		Code:    "stepError",
		Message: msg,
	}
}

// ValidationError carries field errors from the booking-details schema plus
// any input-correction warnings (e.g. an out-of-window time reset to 08:00).
type ValidationError struct {
	Fields   map[string]string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking details validation failed: %d invalid field(s)", len(e.Fields))
}

// SessionInFlightError reports that another mutating request already holds
// the session lock.
type SessionInFlightError struct {
	SessionID string
}

func (e *SessionInFlightError) Error() string {
	return "another request is already in flight for session " + e.SessionID
}
