package models

import "time"

// Role distinguishes the three account kinds.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCleaner  Role = "cleaner"
	RoleAdmin    Role = "admin"
)

// Address is the address saved on a customer profile. It backs the
// "my-address" booking location variant.
type Address struct {
	Street string `bson:"street" json:"street"`
	City   string `bson:"city" json:"city"`
}

// User is an account record.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         Role      `bson:"role" json:"role"`
	SavedAddress *Address  `bson:"saved_address,omitempty" json:"savedAddress,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
