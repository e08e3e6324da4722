package returnbooks

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

// ReceiptLine is one returned book and what it cost.
// Title is the catalog title, RequestedTitle the title as it was given in the command.
type ReceiptLine struct {
	BookID         core.BookIDString
	Title          string
	RequestedTitle string
	Borrower       core.BorrowerName
	Days           int64
	Amount         int64
}

// Receipt is the answer to a ReturnBooks command. Count is len(Lines).
type Receipt struct {
	Lines       []ReceiptLine
	TotalAmount int64
	Count       int
	Skipped     []core.SkippedTitle
	shell.HandlerResult
}

// CommandHandler runs the Snapshot -> Decide -> Commit workflow with retry on concurrency conflicts.
type CommandHandler struct {
	store        StateStore
	ratePerDay   int64
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRatePerDay overrides core.DefaultRatePerDay.
func WithRatePerDay(rate int64) Option {
	return func(h *CommandHandler) {
		h.ratePerDay = rate
	}
}

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store StateStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:      store,
		ratePerDay: core.DefaultRatePerDay,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command with retry logic and builds the Receipt from the committed events.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Receipt, error) {
	var decision core.DecisionResult

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return Receipt{HandlerResult: shell.NewErrorResult(retryMetrics)}, err
	}

	receipt := receiptFrom(decision.Events, requestedTitles(command.Titles, decision.Skipped))
	receipt.Skipped = decision.Skipped

	if decision.IsIdempotent() {
		receipt.HandlerResult = shell.NewIdempotentResult(retryMetrics)
	} else {
		receipt.HandlerResult = shell.NewSuccessResult(retryMetrics)
	}

	return receipt, nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, error) {
	state, version, err := h.store.CurrentState(ctx)
	if err != nil {
		return core.DecisionResult{}, err
	}

	decision := Decide(state, command, h.ratePerDay)

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

// requestedTitles returns the titles that were not skipped, in command order.
// Decide emits one event per such title in the same order.
func requestedTitles(titles []string, skipped []core.SkippedTitle) []string {
	returned := make([]string, 0, len(titles))
	next := 0

	for _, title := range titles {
		if next < len(skipped) && skipped[next].Title == title {
			next++
			continue
		}
		returned = append(returned, title)
	}

	return returned
}

func receiptFrom(events core.DomainEvents, requested []string) Receipt {
	receipt := Receipt{Lines: make([]ReceiptLine, 0, len(events))}

	for _, event := range events {
		e, ok := event.(core.BookReturnedByBorrower)
		if !ok {
			continue
		}

		requestedTitle := e.Title
		if i := len(receipt.Lines); i < len(requested) {
			requestedTitle = requested[i]
		}

		receipt.Lines = append(receipt.Lines, ReceiptLine{
			BookID:         e.BookID,
			Title:          e.Title,
			RequestedTitle: requestedTitle,
			Borrower:       e.Borrower,
			Days:           e.RentDays,
			Amount:         e.Amount,
		})
		receipt.TotalAmount += e.Amount
	}
	receipt.Count = len(receipt.Lines)

	return receipt
}
