package models

import "time"

// IncludedService is one line item of what a cleaning service covers.
type IncludedService struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
}

// Service represents a cleaning service offered in the catalog. Services are
// created by admins and read-only to customers. They are soft-deleted only,
// so historical bookings keep resolving their snapshots.
type Service struct {
	ID                  string            `bson:"id" json:"id"`
	Name                string            `bson:"name" json:"name"`
	Description         string            `bson:"description" json:"description"`
	DetailedDescription string            `bson:"detailed_description" json:"detailedDescription"`
	BasePrice           float64           `bson:"base_price" json:"basePrice"`
	Currency            string            `bson:"currency" json:"currency"`
	EstimatedDuration   float64           `bson:"estimated_duration" json:"estimatedDuration"` // hours
	IncludedServices    []IncludedService `bson:"included_services" json:"includedServices"`
	ImageURL            string            `bson:"image_url" json:"imageUrl"`
	IsDeleted           bool              `bson:"is_deleted" json:"isDeleted"`
	CreatedAt           time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time         `bson:"updated_at" json:"updatedAt"`
}
