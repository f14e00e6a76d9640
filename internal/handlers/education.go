package handlers

import (
	"net/http"

	"github.com/stokvela/backend/internal/calculator"
	"github.com/stokvela/backend/internal/middleware"
	"github.com/stokvela/backend/internal/models"
	"github.com/stokvela/backend/internal/service"
)

// EducationHandler serves the financial literacy endpoints.
type EducationHandler struct {
	service *service.EducationService
}

// NewEducationHandler creates a new EducationHandler.
func NewEducationHandler(service *service.EducationService) *EducationHandler {
	return &EducationHandler{service: service}
}

func language(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return lang
	}
	return "en"
}

// Modules handles GET /education/modules?lang=.
func (h *EducationHandler) Modules(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.service.Modules(language(r)))
}

// Module handles GET /education/modules/{id}?lang=.
func (h *EducationHandler) Module(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "Module not found")
		return
	}

	module := h.service.Module(id, language(r))
	if module == nil {
		respondError(w, http.StatusNotFound, "Module not found")
		return
	}
	respondData(w, http.StatusOK, module)
}

// SaveProgress handles POST /education/progress.
func (h *EducationHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var update models.ProgressUpdate
	if !decodeBody(w, r, &update) {
		return
	}

	if err := h.service.SaveProgress(r.Context(), middleware.GetUserID(r.Context()), update); err != nil {
		respondDomainError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "Progress saved successfully", nil)
}

// Progress handles GET /education/progress.
func (h *EducationHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.Progress(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, progress)
}

type savingsRequest struct {
	MonthlyAmount float64 `json:"monthlyAmount"`
	Months        int     `json:"months"`
	InterestRate  float64 `json:"interestRate"`
}

// CalculateSavings handles POST /education/calculate/savings.
func (h *EducationHandler) CalculateSavings(w http.ResponseWriter, r *http.Request) {
	var req savingsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	projection, err := calculator.CalculateSavings(req.MonthlyAmount, req.Months, req.InterestRate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondData(w, http.StatusOK, projection)
}

type stokvelCalcRequest struct {
	Members             int     `json:"members"`
	MonthlyContribution float64 `json:"monthlyContribution"`
	Duration            int     `json:"duration"`
}

// CalculateStokvel handles POST /education/calculate/stokvel.
func (h *EducationHandler) CalculateStokvel(w http.ResponseWriter, r *http.Request) {
	var req stokvelCalcRequest
	if !decodeBody(w, r, &req) {
		return
	}

	projection, err := calculator.CalculateStokvel(req.Members, req.MonthlyContribution, req.Duration)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondData(w, http.StatusOK, projection)
}
