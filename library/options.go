package library

import (
	"time"

	"github.com/AntonStoeckl/booklending/shell"
)

// SeedBook is a book the Library starts with.
type SeedBook struct {
	Title  string
	Author string
	Shelf  string
}

// Option configures a Library.
type Option func(*Library)

// WithRatePerDay sets the fee per started rent day. It must be positive.
func WithRatePerDay(rate int64) Option {
	return func(l *Library) {
		l.ratePerDay = rate
	}
}

// WithLogger sets a logger for the journal and the command handlers.
func WithLogger(logger shell.Logger) Option {
	return func(l *Library) {
		l.logger = logger
	}
}

// WithContextualLogger sets a context-aware logger. It takes precedence over WithLogger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(l *Library) {
		l.contextualLogger = logger
	}
}

// WithMetrics sets the collector for command and journal metrics.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(l *Library) {
		l.metricsCollector = collector
	}
}

// WithTracing sets the collector for command and journal spans.
func WithTracing(collector shell.TracingCollector) Option {
	return func(l *Library) {
		l.tracingCollector = collector
	}
}

// WithRetryOptions configures how command handlers retry concurrency conflicts.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(l *Library) {
		l.retryOptions = opts
	}
}

// WithSeedBooks adds books, all Available, when the Library is created.
func WithSeedBooks(addedAt time.Time, books ...SeedBook) Option {
	return func(l *Library) {
		l.seedAt = addedAt
		l.seedBooks = books
	}
}
