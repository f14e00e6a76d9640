// Package service holds the domain services between the HTTP handlers
// and the store.
package service

import (
	"context"
	"log/slog"

	"github.com/stokvela/backend/internal/auth"
	"github.com/stokvela/backend/internal/models"
)

// AuthService handles registration and login, pairing the authenticator
// with session token issuance.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, tokens: tokens}
}

// Register creates an account and returns the user with a session token.
func (s *AuthService) Register(ctx context.Context, reg auth.Registration) (*models.User, string, error) {
	user, err := s.authenticator.Register(ctx, reg)
	if err != nil {
		slog.Warn("registration failed", "phone_number", reg.PhoneNumber, "error", err)
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies the phone number and PIN and returns the user with a
// session token.
func (s *AuthService) Login(ctx context.Context, phoneNumber, pin string) (*models.User, string, error) {
	user, err := s.authenticator.Authenticate(ctx, phoneNumber, pin)
	if err != nil {
		slog.Warn("login failed", "phone_number", phoneNumber)
		return nil, "", err
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, "", err
	}

	slog.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}
