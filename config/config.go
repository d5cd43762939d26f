package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIBaseURL  = "http://localhost:8000"
	defaultHTTPTimeout = 12 * time.Second
)

// Config holds runtime configuration. Every field maps to an environment
// variable with a sensible default, so the binary works against a local
// server with no setup.
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
}

// Load reads a .env file if one is present, then the environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL:  defaultAPIBaseURL,
		HTTPTimeout: defaultHTTPTimeout,
	}
	if v := strings.TrimSpace(os.Getenv("CINEBOOK_API_URL")); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(os.Getenv("CINEBOOK_HTTP_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	return cfg
}
