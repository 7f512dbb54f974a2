// Package config defines service configuration structures and loading.
//
// Conventions:
// - Provide New() with defaults and Load(ctx) layering file and env on top.
// - All loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration for the evaluation service.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// JobQueueSize bounds the in-memory evaluation job queue.
	JobQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of evaluation workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the request-id idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// HistoryBackend selects the history store: "memory" or "sqlite".
	HistoryBackend string `koanf:"history_backend"`

	// HistoryPath is the SQLite database path when the backend is sqlite.
	HistoryPath string `koanf:"history_path"`

	// HistorySize bounds the in-memory history store.
	HistorySize int `koanf:"history_size"`

	// MaxHistoryLimit caps GET /history?limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9090",
		JobQueueSize:    10_000,
		WorkerCount:     8,
		DedupeSize:      100_000,
		HistoryBackend:  "memory",
		HistoryPath:     "econlab.db",
		HistorySize:     10_000,
		MaxHistoryLimit: 500,
	}
}
