package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/booklending/shell"
)

// CommandWrapper adds metrics, a span and log lines around any core command handler.
// It never changes the result or the error of the wrapped handler.
type CommandWrapper[C shell.Command, R shell.ReportsHandling] struct {
	coreHandler      shell.CoreCommandHandler[C, R]
	commandType      string
	metricsCollector shell.MetricsCollector
	tracingCollector shell.TracingCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// NewCommandWrapper wraps coreHandler. The command type is taken from the zero value of C.
func NewCommandWrapper[C shell.Command, R shell.ReportsHandling](
	coreHandler shell.CoreCommandHandler[C, R],
	opts ...CommandOption[C, R],
) *CommandWrapper[C, R] {

	var zeroCommand C

	wrapper := &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		opt(wrapper)
	}

	return wrapper
}

// Handle delegates to the core handler and records what happened.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	start := time.Now()
	ctx, span := shell.StartCommandSpan(ctx, w.tracingCollector, w.commandType)
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)
	duration := time.Since(start)
	handling := result.Handling()

	shell.RecordRetryMetrics(ctx, w.metricsCollector, w.commandType, handling)

	if err != nil {
		status := shell.StatusOf(err)
		shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
		shell.FinishCommandSpan(w.tracingCollector, span, status, duration, err)
		shell.LogCommandError(ctx, w.logger, w.contextualLogger, w.commandType, status, err)

		return result, err
	}

	outcome := shell.StatusSuccess
	if handling.Idempotent {
		outcome = shell.StatusIdempotent
	}

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, outcome, duration)
	shell.FinishCommandSpan(w.tracingCollector, span, outcome, duration, nil)
	shell.LogCommandSuccess(ctx, w.logger, w.contextualLogger, w.commandType, outcome, duration)

	return result, nil
}

// CommandOption configures a CommandWrapper.
type CommandOption[C shell.Command, R shell.ReportsHandling] func(*CommandWrapper[C, R])

// WithCommandMetrics sets the metrics collector.
func WithCommandMetrics[C shell.Command, R shell.ReportsHandling](collector shell.MetricsCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) {
		w.metricsCollector = collector
	}
}

// WithCommandTracing sets the tracing collector.
func WithCommandTracing[C shell.Command, R shell.ReportsHandling](collector shell.TracingCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) {
		w.tracingCollector = collector
	}
}

// WithCommandContextualLogging sets the contextual logger. It takes precedence over WithCommandLogging.
func WithCommandContextualLogging[C shell.Command, R shell.ReportsHandling](logger shell.ContextualLogger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) {
		w.contextualLogger = logger
	}
}

// WithCommandLogging sets the plain logger.
func WithCommandLogging[C shell.Command, R shell.ReportsHandling](logger shell.Logger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) {
		w.logger = logger
	}
}
