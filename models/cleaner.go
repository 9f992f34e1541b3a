package models

import "time"

// Cleaner is a member of the cleaning crew that admins assign to bookings.
type Cleaner struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Active    bool      `bson:"active" json:"active"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Ref returns the denormalized reference stored on bookings.
func (c *Cleaner) Ref() CleanerRef {
	return CleanerRef{ID: c.ID, Name: c.Name}
}
