package ecs

import (
	"os"

	"github.com/rs/zerolog"
)

// Option configures a Registry at construction
type Option func(*Registry)

// WithLogger sets the logger used for lifecycle, registration and snapshot
// events. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// WithPrettyLog logs to stderr through a human-readable console writer at debug level.
func WithPrettyLog() Option {
	return func(r *Registry) {
		r.logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Str("component", "ecs").Logger()
	}
}

// WithEntityCapacity preallocates room for n entities in every pool created
// by the registry.
func WithEntityCapacity(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.capacity = n
		}
	}
}
