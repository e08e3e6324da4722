package addbook

import (
	"context"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/shell"
)

// StateStore defines what the CommandHandler needs from the library.
type StateStore interface {
	CurrentState(ctx context.Context) (core.State, uint, error)
	Commit(ctx context.Context, expectedVersion uint, events core.DomainEvents, metadata shell.EventMetadata) error
}

// Result reports the id of the added book next to the handling metadata.
type Result struct {
	BookID core.BookIDString
	shell.HandlerResult
}

// CommandHandler runs the Snapshot -> Decide -> Commit workflow with retry on concurrency conflicts.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store        StateStore
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store StateStore, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var isIdempotent bool

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		idempotent, execErr := h.executeCommand(retryCtx, command)
		isIdempotent = idempotent

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	result := Result{BookID: command.BookID.String()}
	if isIdempotent {
		result.HandlerResult = shell.NewIdempotentResult(retryMetrics)
	} else {
		result.HandlerResult = shell.NewSuccessResult(retryMetrics)
	}

	return result, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (bool, error) {
	state, version, err := h.store.CurrentState(ctx)
	if err != nil {
		return false, err
	}

	decision := Decide(state, command)

	if decisionErr := decision.HasError(); decisionErr != nil {
		return false, decisionErr
	}

	if decision.IsIdempotent() {
		return true, nil
	}

	correlationID := uuid.New()
	metadata := shell.BuildEventMetadata(correlationID, correlationID, commandType)

	if commitErr := h.store.Commit(ctx, version, decision.Events, metadata); commitErr != nil {
		return false, commitErr
	}

	return false, nil
}
