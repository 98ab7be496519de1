// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment sources on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"github.com/MaryEddythe/tabulator/internal/domain/tally"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// RecomputeQueueSize bounds the in-memory recompute request queue.
	RecomputeQueueSize int `koanf:"recompute_queue_size" validate:"gt=0"`

	// AutoRecompute rebuilds the overall table after each submission to
	// a source category.
	AutoRecompute bool `koanf:"auto_recompute"`

	// DedupeSize bounds the submission idempotency cache.
	DedupeSize int `koanf:"dedupe_size" validate:"gt=0"`

	// RosterPath optionally points at a YAML candidate roster; empty
	// uses the built-in roster.
	RosterPath string `koanf:"roster_path"`

	// OverallWeights are the cross-category multipliers for the derived
	// overall score.
	OverallWeights tally.Weights `koanf:"overall_weights"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8090",
		RecomputeQueueSize: 1024,
		AutoRecompute:      true,
		DedupeSize:         10_000,
		OverallWeights:     tally.DefaultWeights(),
	}
}
