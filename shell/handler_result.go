package shell

import "time"

// HandlerResult is what every command handler reports next to its business result:
// whether the command changed anything, and how the commit went.
type HandlerResult struct {
	// Idempotent is true when the decision produced no events, e.g. a batch where every title was skipped.
	Idempotent bool

	// RetryAttempts is the number of attempts made, 1 if the first commit went through.
	RetryAttempts int

	// TotalRetryDelay is the time spent in backoff, not in execution.
	TotalRetryDelay time.Duration

	// LastErrorType classifies the last error seen: "none", "concurrency_conflict",
	// "context_canceled", "context_deadline_exceeded" or "other".
	LastErrorType string

	// RetriesExhausted is true when every attempt ended in a concurrency conflict.
	RetriesExhausted bool
}

// Handling returns r. Result types that embed HandlerResult satisfy ReportsHandling through it.
func (r HandlerResult) Handling() HandlerResult {
	return r
}

// NewSuccessResult creates a HandlerResult for commands that committed events.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return fromRetryMetrics(retryMetrics, false)
}

// NewIdempotentResult creates a HandlerResult for commands that left the library unchanged.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return fromRetryMetrics(retryMetrics, true)
}

// NewErrorResult creates a HandlerResult for failed commands, keeping the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return fromRetryMetrics(retryMetrics, false)
}

func fromRetryMetrics(m RetryMetrics, idempotent bool) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    m.Attempts,
		TotalRetryDelay:  m.TotalDelay,
		LastErrorType:    m.LastErrorType,
		RetriesExhausted: m.RetriesExhausted,
	}
}
