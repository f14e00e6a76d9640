package handlers

import (
	"net/http"

	"github.com/stokvela/backend/internal/middleware"
	"github.com/stokvela/backend/internal/service"
)

// AnalyticsHandler serves the analytics endpoints.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Overview handles GET /analytics.
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.Overview(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, analytics)
}

// Stokvel handles GET /analytics/stokvel/{id}.
func (h *AnalyticsHandler) Stokvel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondError(w, http.StatusNotFound, "Stokvel not found")
		return
	}

	analytics, err := h.service.ForStokvel(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, analytics)
}

// Insights handles GET /analytics/insights.
func (h *AnalyticsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.ForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondData(w, http.StatusOK, insights)
}
