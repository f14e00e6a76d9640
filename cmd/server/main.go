package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/stokvela/backend/internal/auth"
	"github.com/stokvela/backend/internal/config"
	"github.com/stokvela/backend/internal/handlers"
	"github.com/stokvela/backend/internal/middleware"
	"github.com/stokvela/backend/internal/momo"
	"github.com/stokvela/backend/internal/service"
	"github.com/stokvela/backend/internal/storage/memory"
	"github.com/stokvela/backend/pkg/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}
	logging.Setup()

	cfg := config.Load()

	store := memory.New()
	defer store.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPINAuthenticator(store)

	momoClient := momo.NewClient(momo.Config{
		BaseURL:           cfg.MomoBaseURL,
		SubscriptionKey:   cfg.MomoSubscriptionKey,
		APIUser:           cfg.MomoAPIUser,
		APIKey:            cfg.MomoAPIKey,
		TargetEnvironment: cfg.MomoTargetEnvironment,
	})

	router := handlers.NewRouter(handlers.Deps{
		Store:      store,
		JWT:        jwtManager,
		Auth:       service.NewAuthService(authenticator, jwtManager),
		Stokvels:   service.NewStokvelService(store),
		Votes:      service.NewVoteService(store),
		Education:  service.NewEducationService(store, nil),
		Analytics:  service.NewAnalyticsService(store),
		MomoClient: momoClient,
	})

	handler := middleware.Logging(middleware.CORS(router))

	addr := ":" + cfg.Port
	slog.Info("server starting", "address", addr, "momo_environment", cfg.MomoTargetEnvironment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
