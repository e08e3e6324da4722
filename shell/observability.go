package shell

import (
	"context"
	"strconv"
	"time"
)

const (
	CommandHandlerDurationMetric          = "commandhandler_handle_duration_seconds"
	CommandHandlerCallsMetric             = "commandhandler_handle_calls_total"
	CommandHandlerIdempotentMetric        = "commandhandler_idempotent_operations_total"
	CommandHandlerRetriesMetric           = "commandhandler_retries_total"
	CommandHandlerRetryDelayMetric        = "commandhandler_retry_delay_seconds"
	CommandHandlerMaxRetriesReachedMetric = "commandhandler_max_retries_reached_total"

	StatusSuccess             = "success"
	StatusError               = "error"
	StatusIdempotent          = "idempotent"
	StatusCanceled            = "canceled"
	StatusTimeout             = "timeout"
	StatusConcurrencyConflict = "concurrency_conflict"

	LogMsgCommandStarted   = "command handler started"
	LogMsgCommandCompleted = "command handler completed"
	LogMsgCommandFailed    = "command handler failed"

	LogAttrCommandType     = "command_type"
	LogAttrStatus          = "status"
	LogAttrDurationMS      = "duration_ms"
	LogAttrBusinessOutcome = "business_outcome"
	LogAttrRetryCount      = "retry_count"
	LogAttrErrorType       = "error_type"
	LogAttrError           = "error"

	SpanNameCommandHandle = "commandhandler.handle"
)

// StatusOf maps a command error to the status used for metrics, spans and logs.
func StatusOf(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case IsCancellationError(err):
		return StatusCanceled
	case IsTimeoutError(err):
		return StatusTimeout
	case IsConcurrencyConflictError(err):
		return StatusConcurrencyConflict
	default:
		return StatusError
	}
}

// BuildCommandLabels creates the labels of the per-call command metrics.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// BuildRetryLabels creates the labels of the retry counter.
func BuildRetryLabels(commandType string, retryCount int, errorType string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrRetryCount:  strconv.Itoa(retryCount),
		LogAttrErrorType:   errorType,
	}
}

// ToMilliseconds converts d to fractional milliseconds.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// RecordCommandMetrics records duration and call count of one command, plus the idempotent
// counter when nothing changed.
func RecordCommandMetrics(
	ctx context.Context,
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)
	recordDuration(ctx, collector, CommandHandlerDurationMetric, duration, labels)
	incrementCounter(ctx, collector, CommandHandlerCallsMetric, labels)

	if status == StatusIdempotent {
		incrementCounter(ctx, collector, CommandHandlerIdempotentMetric, labels)
	}
}

// RecordRetryMetrics records what the HandlerResult says about retries.
func RecordRetryMetrics(ctx context.Context, collector MetricsCollector, commandType string, result HandlerResult) {
	if collector == nil {
		return
	}

	if result.RetryAttempts > 1 {
		incrementCounter(ctx, collector, CommandHandlerRetriesMetric,
			BuildRetryLabels(commandType, result.RetryAttempts-1, result.LastErrorType))
		recordDuration(ctx, collector, CommandHandlerRetryDelayMetric, result.TotalRetryDelay,
			map[string]string{LogAttrCommandType: commandType})
	}

	if result.RetriesExhausted {
		incrementCounter(ctx, collector, CommandHandlerMaxRetriesReachedMetric,
			map[string]string{LogAttrCommandType: commandType})
	}
}

func recordDuration(ctx context.Context, collector MetricsCollector, metric string, d time.Duration, labels map[string]string) {
	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	collector.RecordDuration(metric, d, labels)
}

func incrementCounter(ctx context.Context, collector MetricsCollector, metric string, labels map[string]string) {
	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}

// StartCommandSpan starts the span of one command. Without a collector it returns ctx and nil.
func StartCommandSpan(ctx context.Context, collector TracingCollector, commandType string) (context.Context, SpanContext) {
	if collector == nil {
		return ctx, nil
	}

	return collector.StartSpan(ctx, SpanNameCommandHandle, map[string]string{LogAttrCommandType: commandType})
}

// FinishCommandSpan ends the span with the outcome of the command.
func FinishCommandSpan(collector TracingCollector, span SpanContext, status string, duration time.Duration, err error) {
	if collector == nil || span == nil {
		return
	}

	attrs := map[string]string{
		LogAttrStatus:     status,
		LogAttrDurationMS: strconv.FormatFloat(ToMilliseconds(duration), 'f', 2, 64),
	}

	if err != nil {
		attrs[LogAttrError] = err.Error()
	}

	collector.FinishSpan(span, status, attrs)
}

// LogCommandStart logs at debug level that a command started.
func LogCommandStart(ctx context.Context, logger Logger, contextualLogger ContextualLogger, commandType string) {
	switch {
	case contextualLogger != nil:
		contextualLogger.DebugContext(ctx, LogMsgCommandStarted, LogAttrCommandType, commandType)
	case logger != nil:
		logger.Debug(LogMsgCommandStarted, LogAttrCommandType, commandType)
	}
}

// LogCommandSuccess logs a completed command with its business outcome.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	businessOutcome string,
	duration time.Duration,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, businessOutcome,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	switch {
	case contextualLogger != nil:
		contextualLogger.InfoContext(ctx, LogMsgCommandCompleted, args...)
	case logger != nil:
		logger.Info(LogMsgCommandCompleted, args...)
	}
}

// LogCommandError logs a failed command. Refusals such as validation errors are logged at
// warn level, infrastructure failures at error level.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	status string,
	err error,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrStatus, status,
		LogAttrError, err.Error(),
	}

	if status == StatusError {
		switch {
		case contextualLogger != nil:
			contextualLogger.WarnContext(ctx, LogMsgCommandFailed, args...)
		case logger != nil:
			logger.Warn(LogMsgCommandFailed, args...)
		}

		return
	}

	switch {
	case contextualLogger != nil:
		contextualLogger.ErrorContext(ctx, LogMsgCommandFailed, args...)
	case logger != nil:
		logger.Error(LogMsgCommandFailed, args...)
	}
}
