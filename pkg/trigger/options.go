package trigger

import (
	"log/slog"
	"time"
)

const defaultResolution = time.Second

// config holds evaluator configuration.
type config struct {
	clock      Clock
	logger     *slog.Logger
	onError    func(Event, error)
	resolution time.Duration
}

// Option configures an Evaluator.
type Option func(*config)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// WithLogger sets the logger for due events and handler failures.
// If not set, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithResolution sets the longest time the evaluator waits before re-reading the clock.
// Defaults to 1 second.
func WithResolution(d time.Duration) Option {
	return func(cfg *config) {
		if d > 0 {
			cfg.resolution = d
		}
	}
}

// WithErrorHandler installs a hook called with every error a handler returns.
// The hook runs on the evaluator goroutine before the next wait starts.
func WithErrorHandler(fn func(Event, error)) Option {
	return func(cfg *config) {
		cfg.onError = fn
	}
}
