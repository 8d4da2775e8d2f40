package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application-wide settings, loaded once at startup.
type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	GeminiAPIKey    string
	DefaultCurrency string
	AllowOrigins    string
}

// Load reads configuration from the environment, with an optional .env
// file for local development. DATABASE_URL and JWT_SECRET are required.
func Load() (*Config, error) {
	// Best effort: a missing .env just means the vars come from the shell.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "3000"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "INR"),
		AllowOrigins:    getEnv("ALLOW_ORIGINS", "*"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
