package memoryengine

import (
	"github.com/AntonStoeckl/booklending/journal"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a logger for operational messages.
//
// Debug level: query and append details with timings
// Info level: concurrency conflicts
// Error level: failures.
func WithLogger(logger journal.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithContextualLogger sets a logger that receives the operation context, e.g. for trace correlation.
// It takes precedence over WithLogger.
func WithContextualLogger(logger journal.ContextualLogger) Option {
	return func(e *Engine) {
		e.contextualLogger = logger
	}
}

// WithMetrics sets the collector for query and append durations and concurrency conflicts.
func WithMetrics(collector journal.MetricsCollector) Option {
	return func(e *Engine) {
		e.metricsCollector = collector
	}
}

// WithTracing sets the collector that receives one span per query and append.
func WithTracing(collector journal.TracingCollector) Option {
	return func(e *Engine) {
		e.tracingCollector = collector
	}
}
