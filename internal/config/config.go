// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the server.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	TokenDuration time.Duration
	LogLevel      string
}

// Load reads configuration from environment variables, loading a local .env
// file first if one exists.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvOrDefault("PORT", "8080"),
		DBPath:   getEnvOrDefault("DB_PATH", "./data/tally.db"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret = os.Getenv("JWT_SECRET"); cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	hours, err := strconv.Atoi(getEnvOrDefault("TOKEN_TTL_HOURS", "24"))
	if err != nil || hours <= 0 {
		return nil, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer")
	}
	cfg.TokenDuration = time.Duration(hours) * time.Hour

	return cfg, nil
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
