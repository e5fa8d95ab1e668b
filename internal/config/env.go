package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by parseEnv. Durations accept the
// time.ParseDuration syntax ("30s", "1m").
const (
	envAPIBaseURL     = "PETMANAGER_API_URL"
	envRequestTimeout = "PETMANAGER_TIMEOUT"
	envHealthInterval = "PETMANAGER_HEALTH_INTERVAL"
	envSessionDir     = "PETMANAGER_SESSION_DIR"
	envPageSize       = "PETMANAGER_PAGE_SIZE"
	envLogLevel       = "PETMANAGER_LOG_LEVEL"
)

// parseEnv overlays Config with values from the environment. A .env file
// in the working directory is loaded first when present; a missing file is
// not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv(envHealthInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HealthCheckInterval = d
		}
	}
	if v := os.Getenv(envSessionDir); v != "" {
		cfg.SessionDir = v
	}
	if v := os.Getenv(envPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
