package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/storage"
)

var (
	// ErrInvalidCredentials covers both unknown phone numbers and wrong
	// PINs; the two cases are intentionally indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidPIN is returned when a registration PIN is not 4-6 digits.
	ErrInvalidPIN = errors.New("PIN must be 4-6 digits")
)

// initialTrustScore is the trust score assigned to new accounts.
const initialTrustScore = 100

// UserStorage is the slice of storage.Store the authenticator needs.
// Keeping it narrow makes the authenticator independent of the full
// store and trivial to mock.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// PINAuthenticator implements PIN-based authentication using bcrypt.
type PINAuthenticator struct {
	storage UserStorage
}

// NewPINAuthenticator creates a new PIN-based authenticator.
func NewPINAuthenticator(storage UserStorage) *PINAuthenticator {
	return &PINAuthenticator{storage: storage}
}

// ValidateCredential checks that the PIN is 4 to 6 digits.
func (a *PINAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 4 || len(credential) > 6 {
		return ErrInvalidPIN
	}
	for _, r := range credential {
		if r < '0' || r > '9' {
			return ErrInvalidPIN
		}
	}
	return nil
}

// Register creates a new account with a hashed PIN.
func (a *PINAuthenticator) Register(ctx context.Context, reg Registration) (*models.User, error) {
	if err := a.ValidateCredential(reg.PIN); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}

	language := reg.Language
	if language == "" {
		language = "en"
	}

	user := &models.User{
		PhoneNumber: reg.PhoneNumber,
		FirstName:   reg.FirstName,
		LastName:    reg.LastName,
		PINHash:     string(hash),
		Language:    language,
		TrustScore:  initialTrustScore,
		IsActive:    true,
	}

	// The store enforces phone-number uniqueness under its own lock.
	if err := a.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateUser) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the phone number and PIN, returning the user if
// valid.
func (a *PINAuthenticator) Authenticate(ctx context.Context, phoneNumber, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
