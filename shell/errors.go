package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/booklending/journal"
)

// IsCancellationError reports whether err is, or wraps, context.Canceled.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError reports whether err is, or wraps, context.DeadlineExceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsConcurrencyConflictError reports whether err is, or wraps, journal.ErrConcurrencyConflict.
func IsConcurrencyConflictError(err error) bool {
	return errors.Is(err, journal.ErrConcurrencyConflict)
}

// errorType classifies err for metric labels and span attributes.
func errorType(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsConcurrencyConflictError(err):
		return StatusConcurrencyConflict
	case IsCancellationError(err):
		return "context_canceled"
	case IsTimeoutError(err):
		return "context_deadline_exceeded"
	default:
		return "other"
	}
}
