package config

import (
	"errors"
	"os"
	"strconv"
)

// Config is loaded once at startup and treated as immutable afterwards.
type Config struct {
	Port        string
	PostgresURI string
	RedisAddr   string

	// Shared secret presented by the automation pipeline in X-API-Key.
	APIKey string

	// Supabase-issued session tokens (HS256).
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// When true every endpoint serves canned fixtures and never touches
	// Postgres or Redis.
	DemoMode bool

	// When set, replaces the per-user minimum score during ingestion.
	// The stored preference is still read so the discrepancy can be logged.
	MinScoreOverride *int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		PostgresURI: os.Getenv("POSTGRES_URI"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		APIKey:      getenv("CAREER_PILOT_API_KEY", "career-pilot-secret-key"),
		JWTSecret:   os.Getenv("SUPABASE_JWT_SECRET"),
		JWTIssuer:   os.Getenv("SUPABASE_JWT_ISSUER"),   // optional
		JWTAudience: os.Getenv("SUPABASE_JWT_AUDIENCE"), // optional
		DemoMode:    os.Getenv("DEMO_MODE") == "true",
	}

	if v := os.Getenv("INGEST_MIN_SCORE_OVERRIDE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.New("INGEST_MIN_SCORE_OVERRIDE must be an integer")
		}
		cfg.MinScoreOverride = &n
	}

	if !cfg.DemoMode {
		if cfg.PostgresURI == "" {
			return nil, errors.New("POSTGRES_URI environment variable is not set")
		}
		if cfg.JWTSecret == "" {
			return nil, errors.New("SUPABASE_JWT_SECRET environment variable is not set")
		}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
