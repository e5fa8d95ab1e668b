// Package config loads runtime configuration for the pet-manager CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file loaded first.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override everything.
package config

import "time"

// Config holds runtime settings for the pet-manager CLI.
type Config struct {
	// APIBaseURL is the HTTPS host of the pet-manager backend.
	APIBaseURL string
	// RequestTimeout bounds every HTTP round trip.
	RequestTimeout time.Duration
	// HealthCheckInterval is how often the backend health is polled.
	HealthCheckInterval time.Duration
	// SessionDir overrides where the session record is persisted;
	// empty means the user config dir.
	SessionDir string
	// PageSize is the default page size for listings.
	PageSize int
	// LogLevel is one of debug|info|warn|error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://pet-manager-api.geia.vip"
	c.RequestTimeout = 30 * time.Second
	c.HealthCheckInterval = 30 * time.Second
	c.SessionDir = ""
	c.PageSize = 10
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present) and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
