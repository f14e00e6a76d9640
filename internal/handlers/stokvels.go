package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/stokvela/backend/internal/middleware"
	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/service"
	"github.com/stokvela/backend/internal/storage"
)

// StokvelHandler serves the stokvel CRUD endpoints.
type StokvelHandler struct {
	service *service.StokvelService
	store   storage.Store
}

// NewStokvelHandler creates a new StokvelHandler.
func NewStokvelHandler(service *service.StokvelService, store storage.Store) *StokvelHandler {
	return &StokvelHandler{service: service, store: store}
}

// pathID extracts the {id} route variable.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil
}

// List handles GET /stokvels.
func (h *StokvelHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	views, err := h.service.List(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if views == nil {
		views = []service.StokvelView{}
	}
	respondData(w, http.StatusOK, views)
}

type createStokvelRequest struct {
	Name               string  `json:"name"`
	Type               string  `json:"type"`
	Description        string  `json:"description"`
	ContributionAmount float64 `json:"contributionAmount"`
	TargetAmount       float64 `json:"targetAmount"`
	Frequency          string  `json:"frequency"`
	MaxMembers         int     `json:"maxMembers"`
	EndDate            string  `json:"endDate"`
	Rules              *struct {
		PenaltyRate          float64 `json:"penaltyRate"`
		AllowEarlyWithdrawal bool    `json:"allowEarlyWithdrawal"`
	} `json:"rules"`
}

func validateCreateStokvel(req createStokvelRequest) []FieldError {
	var errs []FieldError
	if req.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Stokvel name is required"})
	}
	if !models.ValidType(req.Type) {
		errs = append(errs, FieldError{Field: "type", Message: "Invalid stokvel type"})
	}
	if req.ContributionAmount <= 0 {
		errs = append(errs, FieldError{Field: "contributionAmount", Message: "Contribution amount must be a positive number"})
	}
	if req.TargetAmount < 0 {
		errs = append(errs, FieldError{Field: "targetAmount", Message: "Target amount must be a number"})
	}
	if !models.ValidFrequency(req.Frequency) {
		errs = append(errs, FieldError{Field: "frequency", Message: "Invalid frequency"})
	}
	if req.MaxMembers < 2 || req.MaxMembers > 50 {
		errs = append(errs, FieldError{Field: "maxMembers", Message: "Max members must be between 2 and 50"})
	}
	return errs
}

// Create handles POST /stokvels.
func (h *StokvelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createStokvelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if errs := validateCreateStokvel(req); errs != nil {
		respondValidation(w, errs)
		return
	}

	userID := middleware.GetUserID(r.Context())
	creator, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var endDate time.Time
	if req.EndDate != "" {
		endDate, err = time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			respondValidation(w, []FieldError{{Field: "endDate", Message: "End date must be RFC 3339"}})
			return
		}
	}

	in := service.CreateStokvelInput{
		Name:               req.Name,
		Type:               req.Type,
		Description:        req.Description,
		ContributionAmount: req.ContributionAmount,
		TargetAmount:       req.TargetAmount,
		Frequency:          req.Frequency,
		MaxMembers:         req.MaxMembers,
		EndDate:            endDate,
	}
	if req.Rules != nil {
		in.PenaltyRate = req.Rules.PenaltyRate
		in.AllowEarlyWithdrawal = req.Rules.AllowEarlyWithdrawal
	}

	stokvel, err := h.service.Create(r.Context(), creator, in)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Stokvel created successfully", stokvel)
}

// Get handles GET /stokvels/{id}.
func (h *StokvelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "Stokvel not found")
		return
	}

	view, err := h.service.Get(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, view)
}

type joinRequest struct {
	InviteCode string `json:"inviteCode"`
}

// Join handles POST /stokvels/{id}/join.
func (h *StokvelHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "Stokvel not found")
		return
	}

	var req joinRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.InviteCode == "" {
		respondValidation(w, []FieldError{{Field: "inviteCode", Message: "Invite code is required"}})
		return
	}

	userID := middleware.GetUserID(r.Context())
	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	stokvel, err := h.service.Join(r.Context(), id, user, req.InviteCode)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Successfully joined stokvel", stokvel)
}

type contributeRequest struct {
	Amount           float64 `json:"amount"`
	PaymentReference string  `json:"paymentReference"`
}

// Contribute handles POST /stokvels/{id}/contribute.
func (h *StokvelHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "Stokvel not found")
		return
	}

	var req contributeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var errs []FieldError
	if req.Amount <= 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "Amount must be a positive number"})
	}
	if req.PaymentReference == "" {
		errs = append(errs, FieldError{Field: "paymentReference", Message: "Payment reference is required"})
	}
	if errs != nil {
		respondValidation(w, errs)
		return
	}

	result, err := h.service.Contribute(r.Context(), id, middleware.GetUserID(r.Context()), req.Amount, req.PaymentReference)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Contribution recorded successfully", result)
}
