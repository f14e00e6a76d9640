package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stokvela/backend/internal/auth"
	"github.com/stokvela/backend/internal/middleware"
	"github.com/stokvela/backend/internal/momo"
	"github.com/stokvela/backend/internal/service"
	"github.com/stokvela/backend/internal/storage"
)

// Deps bundles everything the router needs.
type Deps struct {
	Store      storage.Store
	JWT        *auth.JWTManager
	Auth       *service.AuthService
	Stokvels   *service.StokvelService
	Votes      *service.VoteService
	Education  *service.EducationService
	Analytics  *service.AnalyticsService
	MomoClient *momo.Client
}

// NewRouter builds the REST router. Everything except registration,
// login, phone verification, health and metrics requires a bearer token.
func NewRouter(deps Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	authHandler := NewAuthHandler(deps.Auth)
	stokvelHandler := NewStokvelHandler(deps.Stokvels, deps.Store)
	voteHandler := NewVoteHandler(deps.Votes)
	momoHandler := NewMomoHandler(deps.MomoClient)
	educationHandler := NewEducationHandler(deps.Education)
	analyticsHandler := NewAnalyticsHandler(deps.Analytics)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondData(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/verify-phone", authHandler.VerifyPhone).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth(deps.JWT))

	protected.HandleFunc("/stokvels", stokvelHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/stokvels", stokvelHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/stokvels/{id}", stokvelHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/stokvels/{id}/join", stokvelHandler.Join).Methods(http.MethodPost)
	protected.HandleFunc("/stokvels/{id}/contribute", stokvelHandler.Contribute).Methods(http.MethodPost)

	protected.HandleFunc("/votes", voteHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/votes", voteHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/votes/{id}/cast", voteHandler.Cast).Methods(http.MethodPost)

	protected.HandleFunc("/momo/request-payment", momoHandler.RequestPayment).Methods(http.MethodPost)
	protected.HandleFunc("/momo/payment-status/{referenceId}", momoHandler.PaymentStatus).Methods(http.MethodGet)
	protected.HandleFunc("/momo/balance", momoHandler.Balance).Methods(http.MethodGet)
	protected.HandleFunc("/momo/transfer", momoHandler.Transfer).Methods(http.MethodPost)
	protected.HandleFunc("/momo/setup-recurring", momoHandler.SetupRecurring).Methods(http.MethodPost)

	protected.HandleFunc("/education/modules", educationHandler.Modules).Methods(http.MethodGet)
	protected.HandleFunc("/education/modules/{id}", educationHandler.Module).Methods(http.MethodGet)
	protected.HandleFunc("/education/progress", educationHandler.SaveProgress).Methods(http.MethodPost)
	protected.HandleFunc("/education/progress", educationHandler.Progress).Methods(http.MethodGet)
	protected.HandleFunc("/education/calculate/savings", educationHandler.CalculateSavings).Methods(http.MethodPost)
	protected.HandleFunc("/education/calculate/stokvel", educationHandler.CalculateStokvel).Methods(http.MethodPost)

	protected.HandleFunc("/analytics", analyticsHandler.Overview).Methods(http.MethodGet)
	protected.HandleFunc("/analytics/stokvel/{id}", analyticsHandler.Stokvel).Methods(http.MethodGet)
	protected.HandleFunc("/analytics/insights", analyticsHandler.Insights).Methods(http.MethodGet)

	return r
}
