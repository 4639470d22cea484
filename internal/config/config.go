package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the typed, defaulted settings the rest of the program depends
// on. Default returns the values used when no settings file is given.
type Config struct {
	StallInterval      time.Duration
	BridgeAddr         string
	BridgeNamespace    string
	InsecureSkipVerify bool
	LogFormat          string
	LogLevel           string
	WorkerCount        int
}

// Default returns the settings the CLI demo runs with when -config is not
// given.
func Default() Config {
	return Config{
		StallInterval:   5 * time.Second,
		BridgeNamespace: "/",
		LogFormat:       "json",
		LogLevel:        "info",
		WorkerCount:     4,
	}
}

// FromModel converts a decoded Model into a Config, applying defaults for
// every field the file left unset and validating the rest.
func FromModel(m Model) (Config, error) {
	cfg := Default()

	if m.StallInterval != "" {
		d, err := time.ParseDuration(m.StallInterval)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid stall_interval %q: %w", m.StallInterval, err)
		}
		cfg.StallInterval = d
	}
	if m.BridgeAddr != "" {
		cfg.BridgeAddr = m.BridgeAddr
	}
	if m.BridgeNamespace != "" {
		cfg.BridgeNamespace = m.BridgeNamespace
	}
	cfg.InsecureSkipVerify = m.InsecureSkipVerify
	if m.LogFormat != "" {
		cfg.LogFormat = strings.ToLower(m.LogFormat)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("config: invalid log_format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if m.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(m.LogLevel)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("config: invalid log_level %q", cfg.LogLevel)
	}
	if m.WorkerCount > 0 {
		cfg.WorkerCount = m.WorkerCount
	}
	return cfg, nil
}
