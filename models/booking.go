package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCanceled  BookingStatus = "canceled"
)

// IsTerminal reports whether the status admits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCanceled
}

// Frequency is how often the cleaning recurs.
type Frequency string

const (
	FrequencyOnce     Frequency = "once"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// CleanerRef is the denormalized cleaner reference stored on a booking.
type CleanerRef struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Review is a customer's post-service review attached to a booking.
type Review struct {
	Rating    int       `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Booking represents a customer's booking of a cleaning service. The service
// is embedded as a snapshot taken at creation time so later catalog edits and
// soft deletes do not rewrite history.
type Booking struct {
	ID                  string          `bson:"id" json:"id"`
	Service             Service         `bson:"service" json:"service"`
	CustomerID          string          `bson:"customer_id" json:"customerId"`
	ScheduledAt         time.Time       `bson:"scheduled_at" json:"scheduledAt"`
	Frequency           Frequency       `bson:"frequency" json:"frequency"`
	SpecialInstructions string          `bson:"special_instructions,omitempty" json:"specialInstructions,omitempty"`
	Location            ServiceLocation `bson:"location" json:"location"`
	Phone               string          `bson:"phone" json:"phone"`
	Status              BookingStatus   `bson:"status" json:"status"`
	AssignedCleaner     *CleanerRef     `bson:"assigned_cleaner,omitempty" json:"assignedCleaner,omitempty"`
	CleanerNotes        string          `bson:"cleaner_notes,omitempty" json:"cleanerNotes,omitempty"`
	Review              *Review         `bson:"review,omitempty" json:"review,omitempty"`
	CreatedAt           time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time       `bson:"updated_at" json:"updatedAt"`
}

// AssignmentAllowed reports whether a cleaner may still be assigned or the
// booking canceled. Only pending and confirmed bookings qualify.
func (b *Booking) AssignmentAllowed() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// BookingFilter narrows admin booking listings.
type BookingFilter struct {
	Status   BookingStatus
	DateFrom time.Time
	DateTo   time.Time
	Page     int
	PageSize int
}
