package models

import "time"

// User represents a registered account.
//
// Users authenticate with their phone number and a short numeric PIN.
// The PIN is stored as a bcrypt hash and never leaves the backend.
type User struct {
	// ID is assigned sequentially by the store.
	ID int64 `json:"id"`

	// PhoneNumber is the user's mobile number (unique across users).
	// It doubles as the MoMo party identifier for payments.
	PhoneNumber string `json:"phoneNumber"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	// PINHash is the bcrypt hash of the login PIN. Excluded from JSON.
	PINHash string `json:"-"`

	// Language is the preferred UI language (en, zu, xh, af).
	Language string `json:"language"`

	// TrustScore reflects payment reliability. New accounts start at 100.
	TrustScore int `json:"trustScore"`

	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
