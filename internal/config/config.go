// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all runtime configuration for the server
type Config struct {
	Env  string
	Port string

	// Storage selects the persistence backend: "postgres" or "memory".
	// Memory is meant for local development and tests.
	Storage     string
	DatabaseURL string

	TokenSecret string
	TokenTTL    time.Duration

	// WelcomeBonus is deposited into every new customer's first account
	WelcomeBonus decimal.Decimal

	AllowedOrigins string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; in containers everything comes from real env vars.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		Storage:        getEnv("STORAGE", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", "host=localhost port=5432 user=postgres password=postgres dbname=atlasbank sslmode=disable"),
		TokenSecret:    getEnv("JWT_SECRET", ""),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),
	}

	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	ttlHours, err := strconv.Atoi(getEnv("JWT_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("JWT_TTL_HOURS must be a positive integer")
	}
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour

	bonus, err := decimal.NewFromString(getEnv("WELCOME_BONUS", "1000"))
	if err != nil || bonus.IsNegative() {
		return nil, fmt.Errorf("WELCOME_BONUS must be a non-negative decimal")
	}
	cfg.WelcomeBonus = bonus

	if cfg.Storage != "postgres" && cfg.Storage != "memory" {
		return nil, fmt.Errorf("STORAGE must be postgres or memory, got %q", cfg.Storage)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable or a fallback
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
