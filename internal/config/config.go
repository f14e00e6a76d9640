// Package config loads the server configuration from the environment.
package config

import (
	"os"
	"time"
)

// Config carries everything cmd/server needs to wire the application.
type Config struct {
	Port string

	JWTSecret     string
	TokenDuration time.Duration

	MomoBaseURL           string
	MomoSubscriptionKey   string
	MomoAPIUser           string
	MomoAPIKey            string
	MomoTargetEnvironment string
}

// Load reads the configuration from environment variables, applying the
// sandbox defaults used in development.
func Load() Config {
	return Config{
		Port: getEnv("PORT", "3000"),

		JWTSecret:     getEnv("JWT_SECRET", "fallback-secret"),
		TokenDuration: getDuration("JWT_EXPIRES_IN", 7*24*time.Hour),

		MomoBaseURL:           getEnv("MOMO_BASE_URL", "https://sandbox.momodeveloper.mtn.com"),
		MomoSubscriptionKey:   os.Getenv("MOMO_SUBSCRIPTION_KEY"),
		MomoAPIUser:           os.Getenv("MOMO_API_USER"),
		MomoAPIKey:            os.Getenv("MOMO_API_KEY"),
		MomoTargetEnvironment: getEnv("MOMO_TARGET_ENVIRONMENT", "sandbox"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
