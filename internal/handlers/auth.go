package handlers

import (
	"net/http"

	"github.com/stokvela/backend/internal/auth"
	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/service"
)

// AuthHandler serves registration, login and phone verification.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PIN         string `json:"pin"`
	Language    string `json:"language"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

func validLanguage(lang string) bool {
	return lang == "" || lang == "en" || lang == "zu" || lang == "xh" || lang == "af"
}

// validPhone accepts international-format numbers: optional +, 9-15 digits.
func validPhone(phone string) bool {
	digits := phone
	if len(digits) > 0 && digits[0] == '+' {
		digits = digits[1:]
	}
	if len(digits) < 9 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (h *AuthHandler) validateRegister(req registerRequest) []FieldError {
	var errs []FieldError
	if !validPhone(req.PhoneNumber) {
		errs = append(errs, FieldError{Field: "phoneNumber", Message: "Valid phone number required"})
	}
	if req.FirstName == "" {
		errs = append(errs, FieldError{Field: "firstName", Message: "First name is required"})
	}
	if req.LastName == "" {
		errs = append(errs, FieldError{Field: "lastName", Message: "Last name is required"})
	}
	if len(req.PIN) < 4 || len(req.PIN) > 6 {
		errs = append(errs, FieldError{Field: "pin", Message: "PIN must be 4-6 digits"})
	}
	if !validLanguage(req.Language) {
		errs = append(errs, FieldError{Field: "language", Message: "Invalid language"})
	}
	return errs
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := h.validateRegister(req); errs != nil {
		respondValidation(w, errs)
		return
	}

	user, token, err := h.service.Register(r.Context(), auth.Registration{
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PIN:         req.PIN,
		Language:    req.Language,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		Success: true,
		Message: "User registered successfully",
		Token:   token,
		User:    user,
	})
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	PIN         string `json:"pin"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs []FieldError
	if !validPhone(req.PhoneNumber) {
		errs = append(errs, FieldError{Field: "phoneNumber", Message: "Valid phone number required"})
	}
	if req.PIN == "" {
		errs = append(errs, FieldError{Field: "pin", Message: "PIN is required"})
	}
	if errs != nil {
		respondValidation(w, errs)
		return
	}

	user, token, err := h.service.Login(r.Context(), req.PhoneNumber, req.PIN)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Success: true,
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

type verifyPhoneRequest struct {
	PhoneNumber      string `json:"phoneNumber"`
	VerificationCode string `json:"verificationCode"`
}

// VerifyPhone handles POST /auth/verify-phone. Demo behavior: any
// 4-digit code verifies; a real deployment would check an SMS code here.
func (h *AuthHandler) VerifyPhone(w http.ResponseWriter, r *http.Request) {
	var req verifyPhoneRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if len(req.VerificationCode) == 4 {
		respondMessage(w, http.StatusOK, "Phone number verified successfully", nil)
		return
	}
	respondError(w, http.StatusBadRequest, "Invalid verification code")
}
