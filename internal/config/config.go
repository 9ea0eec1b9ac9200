// Package config defines service configuration structures and loading.
package config

import (
	"runtime"

	"github.com/okian/rumble/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory recalculation queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of recalculation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize caps the in-flight recalculation tracker.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// PrimaryPromotion wins duplicate-name ties during roster
	// canonicalization.
	PrimaryPromotion string `koanf:"primary_promotion"`

	// PointWeights overlays the scoring rule table. Recognized keys:
	// entrants, final_four, winner, entry_1, entry_2, entry_30,
	// most_eliminations, match_winner, match_finish_method,
	// match_finish_winner, match_finish_loser.
	PointWeights map[string]int `koanf:"point_weights"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          50_000,
		MaxLeaderboardLimit: 100,
		PrimaryPromotion:    "WWE",
		PointWeights:        scoring.DefaultRules(),
	}
}
