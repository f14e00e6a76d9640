package handlers

import (
	"net/http"
	"time"

	"github.com/stokvela/backend/internal/middleware"
	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/service"
)

// VoteHandler serves the group voting endpoints.
type VoteHandler struct {
	service *service.VoteService
}

// NewVoteHandler creates a new VoteHandler.
func NewVoteHandler(service *service.VoteService) *VoteHandler {
	return &VoteHandler{service: service}
}

// List handles GET /votes.
func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	votes, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if votes == nil {
		votes = []models.Vote{}
	}
	respondData(w, http.StatusOK, votes)
}

type createVoteRequest struct {
	Title         string   `json:"title"`
	StokvelID     int64    `json:"stokvelId"`
	Description   string   `json:"description"`
	Type          string   `json:"type"`
	EndDate       string   `json:"endDate"`
	RequiredVotes int      `json:"requiredVotes"`
	Options       []string `json:"options"`
}

// Create handles POST /votes.
func (h *VoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createVoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var errs []FieldError
	if req.Title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title is required"})
	}
	if req.StokvelID == 0 {
		errs = append(errs, FieldError{Field: "stokvelId", Message: "Valid stokvel ID required"})
	}
	if len(req.Options) < 2 {
		errs = append(errs, FieldError{Field: "options", Message: "At least two options are required"})
	}
	if errs != nil {
		respondValidation(w, errs)
		return
	}

	var endDate time.Time
	if req.EndDate != "" {
		var err error
		endDate, err = time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			respondValidation(w, []FieldError{{Field: "endDate", Message: "End date must be RFC 3339"}})
			return
		}
	}

	vote, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), service.CreateVoteInput{
		Title:         req.Title,
		StokvelID:     req.StokvelID,
		Description:   req.Description,
		Type:          req.Type,
		EndDate:       endDate,
		RequiredVotes: req.RequiredVotes,
		Options:       req.Options,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusCreated, "Vote created successfully", vote)
}

type castVoteRequest struct {
	Option string `json:"option"`
}

// Cast handles POST /votes/{id}/cast.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "Vote not found")
		return
	}

	var req castVoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Option == "" {
		respondValidation(w, []FieldError{{Field: "option", Message: "Option is required"}})
		return
	}

	vote, err := h.service.Cast(r.Context(), id, middleware.GetUserID(r.Context()), req.Option)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Vote cast successfully", vote)
}
