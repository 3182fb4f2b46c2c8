// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and INTROEVAL_* env vars over the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DefaultDurationSec is used when a request omits "duration".
	DefaultDurationSec int `koanf:"default_duration_sec"`

	// MaxTranscriptBytes caps the request body of POST /evaluate. Zero disables the cap.
	MaxTranscriptBytes int64 `koanf:"max_transcript_bytes"`

	// BatchWorkers bounds concurrent evaluations inside one batch request.
	BatchWorkers int `koanf:"batch_workers"`

	// MaxBatchSize caps the number of items in POST /evaluate/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// RequestTimeoutMS bounds the handling time of a single HTTP request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":8080",
		DefaultDurationSec: 52,
		MaxTranscriptBytes: 1 << 20,
		BatchWorkers:       runtime.NumCPU(),
		MaxBatchSize:       100,
		RequestTimeoutMS:   10_000,
	}
	return c
}
