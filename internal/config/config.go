// Package config carries the injectable settings for the guardrail
// core. Every threshold has a default matching production behavior and
// can be overridden per instance, so tests never depend on globals.
package config

import (
	"os"
	"strconv"
	"time"
)

// Defaults.
const (
	DefaultMaxWarnings    = 3
	DefaultMaxInputChars  = 5000
	DefaultCertaintyLimit = 3
	DefaultBlockDuration  = time.Hour
)

// Config holds the guardrail settings.
type Config struct {
	// LogLevel is the zap level name: debug, info, warn, error.
	LogLevel string

	// MaxWarnings is the warning count at which a user is locked out.
	MaxWarnings int

	// MaxInputChars is the input length guard threshold in characters.
	MaxInputChars int

	// CertaintyLimit is the number of certainty words an output may
	// contain before the excessive-certainty guard fires.
	CertaintyLimit int

	// BlockDuration is how long a lockout is meant to last. Nothing
	// currently schedules the unblock; lockouts persist until an
	// explicit reset.
	BlockDuration time.Duration

	// RulesPath points at a YAML rule pack. Empty means the built-in
	// default pack.
	RulesPath string

	// ClickHouseDSN, when set, routes audit events to ClickHouse
	// instead of the structured-log fallback.
	ClickHouseDSN string
}

// Default returns the production defaults.
func Default() Config {
	return Config{
		LogLevel:       "info",
		MaxWarnings:    DefaultMaxWarnings,
		MaxInputChars:  DefaultMaxInputChars,
		CertaintyLimit: DefaultCertaintyLimit,
		BlockDuration:  DefaultBlockDuration,
	}
}

// FromEnv builds a Config from RAMPART_* environment variables, falling
// back to the defaults for anything unset or unparsable.
func FromEnv() Config {
	cfg := Default()
	cfg.LogLevel = envOrDefault("RAMPART_LOG_LEVEL", cfg.LogLevel)
	cfg.MaxWarnings = envOrDefaultInt("RAMPART_MAX_WARNINGS", cfg.MaxWarnings)
	cfg.MaxInputChars = envOrDefaultInt("RAMPART_MAX_INPUT_CHARS", cfg.MaxInputChars)
	cfg.CertaintyLimit = envOrDefaultInt("RAMPART_CERTAINTY_LIMIT", cfg.CertaintyLimit)
	cfg.BlockDuration = time.Duration(envOrDefaultInt("RAMPART_BLOCK_DURATION_S", int(cfg.BlockDuration/time.Second))) * time.Second
	cfg.RulesPath = envOrDefault("RAMPART_RULES_PATH", "")
	cfg.ClickHouseDSN = os.Getenv("CLICKHOUSE_DSN")
	return cfg
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
