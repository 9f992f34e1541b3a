package models

import "time"

// WizardStep indexes the four booking wizard steps. The flow is strictly
// linear; a step is only reachable once the previous step's side effect has
// completed.
type WizardStep int

const (
	StepSelectService WizardStep = iota
	StepBookingDetails
	StepPayment
	StepConfirmation
)

func (s WizardStep) String() string {
	switch s {
	case StepSelectService:
		return "select-service"
	case StepBookingDetails:
		return "booking-details"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// WizardSession holds the state of one in-progress booking wizard. It lives
// in Redis with a TTL and is never persisted past the flow.
type WizardSession struct {
	SessionID       string     `json:"sessionId"`
	UserID          string     `json:"userId"`
	Step            WizardStep `json:"step"`
	SelectedService *Service   `json:"selectedService,omitempty"`
	Booking         *Booking   `json:"booking,omitempty"`
	// PendingRedirect is set while a redirect payment awaits the gateway's
	// return call; the step stays at payment until then.
	PendingRedirect bool      `json:"pendingRedirect,omitempty"`
	LastError       string    `json:"lastError,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// BookingDetailsInput is the booking-details form submission. Validation
// rules live in the wizard service; the struct tags cover the declarative
// part of the schema.
type BookingDetailsInput struct {
	BookingDate         string         `json:"bookingDate" validate:"required,futuredate"`
	BookingTime         string         `json:"bookingTime" validate:"required,businesshours"`
	Frequency           Frequency      `json:"frequency" validate:"omitempty,oneof=once weekly biweekly monthly"`
	Phone               string         `json:"phone" validate:"required,phone10"`
	SpecialInstructions string         `json:"specialInstructions"`
	AddressOption       LocationOption `json:"addressOption" validate:"required,oneof=my-address new-address"`
	Street              string         `json:"street" validate:"required_if=AddressOption new-address"`
	City                string         `json:"city" validate:"required_if=AddressOption new-address"`
}
