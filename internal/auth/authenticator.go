package auth

import (
	"context"

	"github.com/stokvela/backend/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between credential methods (PIN, OTP,
// biometric-backed tokens, etc.) without changing the service layer.
type Authenticator interface {
	// Register creates a new account for the phone number with the given
	// credential. Returns the created user or an error if registration fails.
	Register(ctx context.Context, reg Registration) (*models.User, error)

	// Authenticate verifies the credential for the phone number and
	// returns the user if successful.
	Authenticate(ctx context.Context, phoneNumber, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements (for PINs: length and digits).
	ValidateCredential(credential string) error
}

// Registration carries the fields needed to open an account.
type Registration struct {
	PhoneNumber string
	FirstName   string
	LastName    string
	PIN         string
	Language    string
}
