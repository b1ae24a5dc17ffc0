// Package solver is the HTTP client for the external menu solver, which
// turns a week's nutrition targets into a concrete meal suggestion. The
// solver is optional and disabled by default; the application degrades to an
// unavailable state rather than failing when it is absent.
package solver

import (
	"os"
	"strconv"
)

// Config holds all configuration for the solver client.
type Config struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	TimeoutMs  int
	MaxRetries int
}

// DefaultConfig returns a Config with the solver disabled.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		LogCalls:   false,
		Endpoint:   "http://localhost:8090",
		TimeoutMs:  5000,
		MaxRetries: 1,
	}
}

// LoadConfig reads solver configuration from environment variables, falling
// back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("VICTUS_SOLVER_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("VICTUS_SOLVER_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("VICTUS_SOLVER_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("VICTUS_SOLVER_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("VICTUS_SOLVER_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}
