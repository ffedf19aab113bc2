package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Database URLs
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string

	// Provider
	ProviderBaseURL string
	ProviderTimeout time.Duration

	// Model registry
	ModelDir string

	// State engine
	EloK          float64
	RatingBase    float64
	RatingScale   float64
	FormWindow    int
	H2HDepth      int
	StateCacheTTL time.Duration

	// Ensemble
	ModelTimeout    time.Duration
	HighThreshold   float64
	MediumThreshold float64

	// Background results updater
	UpdateInterval time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		ProviderBaseURL: getEnv("PROVIDER_BASE_URL", "https://site.api.espn.com/apis/site/v2/sports/football/nfl"),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),

		ModelDir: getEnv("MODEL_DIR", "data/models"),

		EloK:          getEnvFloat("ELO_K", 20),
		RatingBase:    getEnvFloat("RATING_BASE", 1500),
		RatingScale:   getEnvFloat("RATING_SCALE", 400),
		FormWindow:    getEnvInt("FORM_WINDOW", 5),
		H2HDepth:      getEnvInt("H2H_DEPTH", 5),
		StateCacheTTL: getEnvDuration("STATE_CACHE_TTL", 6*time.Hour),

		ModelTimeout:    getEnvDuration("MODEL_TIMEOUT", 2*time.Second),
		HighThreshold:   getEnvFloat("CONFIDENCE_HIGH", 0.75),
		MediumThreshold: getEnvFloat("CONFIDENCE_MEDIUM", 0.55),

		UpdateInterval: getEnvDuration("UPDATE_INTERVAL", 15*time.Minute),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	if cfg.MediumThreshold >= cfg.HighThreshold {
		return nil, fmt.Errorf("CONFIDENCE_MEDIUM (%.2f) must be below CONFIDENCE_HIGH (%.2f)",
			cfg.MediumThreshold, cfg.HighThreshold)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
