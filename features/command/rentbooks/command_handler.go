package rentbooks

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

// Result reports which books were rented and which titles were skipped.
// Count is the number of books rented, the figure shown to the librarian.
type Result struct {
	Rented  []core.RentalRecord
	Count   int
	Skipped []core.SkippedTitle
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

// Handle executes the command with retry logic. Each retry decides again on a fresh snapshot,
// so the result always describes the attempt that was committed.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var decision core.DecisionResult

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Result{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	result := Result{
		Rented:  rentalRecordsFrom(decision.Events),
		Skipped: decision.Skipped,
	}
	result.Count = len(result.Rented)

	if decision.IsIdempotent() {
		result.HandlerResult = shell.NewIdempotentResult(retryMetrics)
	} else {
		result.HandlerResult = shell.NewSuccessResult(retryMetrics)
	}

	return result, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, error) {
	state, version, err := h.store.CurrentState(ctx)
	if err != nil {
		return core.DecisionResult{}, err
	}

	decision := Decide(state, command)

	if decisionErr := decision.HasError(); decisionErr != nil {
		return decision, decisionErr
	}

	if !decision.HasEventsToAppend() {
		return decision, nil
	}

	correlationID := uuid.New()
	metadata := shell.BuildEventMetadata(correlationID, correlationID, commandType)

	if commitErr := h.store.Commit(ctx, version, decision.Events, metadata); commitErr != nil {
		return decision, commitErr
	}

	return decision, nil
}

func rentalRecordsFrom(events core.DomainEvents) []core.RentalRecord {
	records := make([]core.RentalRecord, 0, len(events))

	for _, event := range events {
		if e, ok := event.(core.BookRentedToBorrower); ok {
			records = append(records, core.RentalRecord{
				BookID:    e.BookID,
				Title:     e.Title,
				Borrower:  e.Borrower,
				RentStart: e.OccurredAt,
			})
		}
	}

	return records
}
