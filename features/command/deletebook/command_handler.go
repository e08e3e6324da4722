package deletebook

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

// Result reports the deleted book. Forfeited is set if the book was rented at that moment.
type Result struct {
	Deleted   core.Book
	Forfeited *core.RentalRecord
	shell.HandlerResult
}

// CommandHandler runs the Snapshot -> Decide -> Commit workflow with retry on concurrency conflicts.
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
	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		result, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	result.HandlerResult = shell.NewSuccessResult(retryMetrics)

	return result, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (Result, error) {
	state, version, err := h.store.CurrentState(ctx)
	if err != nil {
		return Result{}, err
	}

	decision := Decide(state, command)

	if decisionErr := decision.HasError(); decisionErr != nil {
		return Result{}, decisionErr
	}

	correlationID := uuid.New()
	metadata := shell.BuildEventMetadata(correlationID, correlationID, commandType)

	if commitErr := h.store.Commit(ctx, version, decision.Events, metadata); commitErr != nil {
		return Result{}, commitErr
	}

	return resultFrom(state, decision.Events), nil
}

func resultFrom(before core.State, events core.DomainEvents) Result {
	var result Result

	for _, event := range events {
		e, ok := event.(core.BookDeletedFromCatalog)
		if !ok {
			continue
		}

		result.Deleted, _ = before.Catalog.ByID(e.BookID)
		if record, rented := before.Ledger.Lookup(e.BookID); rented {
			result.Forfeited = &record
		}
	}

	return result
}
