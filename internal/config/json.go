package config

import (
	"encoding/json"
	"os"

	"petmanager/internal/flagx"
	"petmanager/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be given either as strings like "30s" or
// as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string         `json:"api_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	HealthCheckInterval timex.Duration `json:"health_check_interval"`
	SessionDir          string         `json:"session_dir"`
	PageSize            int            `json:"page_size"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// the -c/-config flags. No flag means no JSON is loaded. Only fields
// present in the file override the current values.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.HealthCheckInterval.Duration > 0 {
		cfg.HealthCheckInterval = jc.HealthCheckInterval.Duration
	}
	if jc.SessionDir != "" {
		cfg.SessionDir = jc.SessionDir
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
