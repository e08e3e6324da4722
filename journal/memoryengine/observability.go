package memoryengine

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/booklending/journal"
)

func (e *Engine) logDebug(ctx context.Context, msg string, args ...any) {
	switch {
	case e.contextualLogger != nil:
		e.contextualLogger.DebugContext(ctx, msg, args...)
	case e.logger != nil:
		e.logger.Debug(msg, args...)
	}
}

func (e *Engine) logInfo(ctx context.Context, msg string, args ...any) {
	switch {
	case e.contextualLogger != nil:
		e.contextualLogger.InfoContext(ctx, msg, args...)
	case e.logger != nil:
		e.logger.Info(msg, args...)
	}
}

func (e *Engine) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	switch {
	case e.contextualLogger != nil:
		e.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	case e.logger != nil:
		e.logger.Error(msg, allArgs...)
	}
}

func (e *Engine) recordDuration(ctx context.Context, metric string, d time.Duration, operation, status string) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: operation, labelStatus: status}

	if contextual, ok := e.metricsCollector.(journal.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	e.metricsCollector.RecordDuration(metric, d, labels)
}

func (e *Engine) incrementConflicts(ctx context.Context) {
	if e.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: operationAppend}

	if contextual, ok := e.metricsCollector.(journal.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metricConcurrencyConflict, labels)
		return
	}

	e.metricsCollector.IncrementCounter(metricConcurrencyConflict, labels)
}

func (e *Engine) startSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, journal.SpanContext) {
	if e.tracingCollector == nil {
		return ctx, nil
	}

	return e.tracingCollector.StartSpan(ctx, name, attrs)
}

func (e *Engine) finishSpan(span journal.SpanContext, status string, attrs map[string]string) {
	if e.tracingCollector == nil || span == nil {
		return
	}

	e.tracingCollector.FinishSpan(span, status, attrs)
}

func (e *Engine) fail(
	ctx context.Context,
	span journal.SpanContext,
	operation string,
	errorType string,
	err error,
	duration time.Duration,
) {
	metric := metricQueryDuration
	if operation == operationAppend {
		metric = metricAppendDuration
	}

	e.recordDuration(ctx, metric, duration, operation, statusError)
	e.logError(ctx, logMsgOperationFailed, err, logAttrOperation, operation)
	e.finishSpan(span, statusError, map[string]string{spanAttrErrorType: errorType})
}

func (e *Engine) conflict(
	ctx context.Context,
	span journal.SpanContext,
	expected journal.MaxSequenceNumberUint,
	current journal.MaxSequenceNumberUint,
	duration time.Duration,
) {
	e.recordDuration(ctx, metricAppendDuration, duration, operationAppend, statusError)
	e.incrementConflicts(ctx)
	e.logInfo(ctx, logMsgConcurrencyConflict,
		logAttrExpectedSequence, expected,
		logAttrMaxSequence, current,
	)
	e.finishSpan(span, statusError, map[string]string{
		spanAttrErrorType:   errorTypeConflict,
		spanAttrMaxSequence: strconv.FormatUint(uint64(current), 10),
	})
}

// toMilliseconds converts a duration to milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
