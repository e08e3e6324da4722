package returnbooks_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/features/command/returnbooks"
	"github.com/AntonStoeckl/booklending/shell"
	"github.com/AntonStoeckl/booklending/testutil/statestore"
)

func Test_CommandHandler_Handle_Success_BuildsReceipt(t *testing.T) {
	// arrange
	bookA, bookB := uuid.New(), uuid.New()
	history := append(givenRentedBook(bookA, "A", "Alice"), givenRentedBook(bookB, "B", "Bob")...)
	store := statestore.New(t, history...)
	handler := returnbooks.NewCommandHandler(store)

	// act
	receipt, err := handler.Handle(
		context.Background(),
		returnbooks.BuildCommand([]string{"A", "B", "Missing"}, rentStart.Add(36*time.Hour)),
	)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Count)
	assert.Equal(t, int64(40), receipt.TotalAmount)
	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, returnbooks.ReceiptLine{BookID: bookA.String(), Title: "A", RequestedTitle: "A", Borrower: "Alice", Days: 2, Amount: 20}, receipt.Lines[0])
	assert.Equal(t, "B", receipt.Lines[1].Title)
	require.Len(t, receipt.Skipped, 1)
	assert.ErrorIs(t, receipt.Skipped[0].Reason, core.ErrNotFound)

	state := store.State()
	assert.Equal(t, 0, state.Ledger.Len())
	book, _ := state.Catalog.ByID(bookA.String())
	assert.Equal(t, core.Available, book.Status)
	assert.NoError(t, state.CheckInvariant())
}

func Test_CommandHandler_Handle_Success_ReceiptKeepsRequestedTitle(t *testing.T) {
	// arrange
	history := append(givenRentedBook(uuid.New(), "Python Basics", "Alice"), givenRentedBook(uuid.New(), "Java Programming", "Bob")...)
	store := statestore.New(t, history...)
	handler := returnbooks.NewCommandHandler(store)

	// act
	receipt, err := handler.Handle(
		context.Background(),
		returnbooks.BuildCommand([]string{"Missing", "python basics", "PYTHON BASICS", "java programming"}, rentStart),
	)

	// assert
	require.NoError(t, err)
	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "python basics", receipt.Lines[0].RequestedTitle)
	assert.Equal(t, "Python Basics", receipt.Lines[0].Title)
	assert.Equal(t, "java programming", receipt.Lines[1].RequestedTitle)
	assert.Equal(t, "Java Programming", receipt.Lines[1].Title)
	assert.Len(t, receipt.Skipped, 2)
}

func Test_CommandHandler_Handle_Success_WithConfiguredRate(t *testing.T) {
	// arrange
	store := statestore.New(t, givenRentedBook(uuid.New(), "A", "Alice")...)
	handler := returnbooks.NewCommandHandler(store, returnbooks.WithRatePerDay(25))

	// act
	receipt, err := handler.Handle(context.Background(), returnbooks.BuildCommand([]string{"A"}, rentStart))

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(25), receipt.TotalAmount)
}

func Test_CommandHandler_Handle_Idempotent_WhenNothingReturned(t *testing.T) {
	// arrange
	store := statestore.New(t)
	handler := returnbooks.NewCommandHandler(store)

	// act
	receipt, err := handler.Handle(context.Background(), returnbooks.BuildCommand([]string{"A"}, rentStart))

	// assert
	require.NoError(t, err)
	assert.True(t, receipt.Idempotent)
	assert.Equal(t, 0, receipt.Count)
	assert.Empty(t, receipt.Lines)
	assert.Equal(t, int64(0), receipt.TotalAmount)
}

func Test_CommandHandler_Handle_Error_WhenRateNotPositive(t *testing.T) {
	// arrange
	store := statestore.New(t, givenRentedBook(uuid.New(), "A", "Alice")...)
	handler := returnbooks.NewCommandHandler(store, returnbooks.WithRatePerDay(0))

	// act
	_, err := handler.Handle(context.Background(), returnbooks.BuildCommand([]string{"A"}, rentStart))

	// assert
	assert.ErrorIs(t, err, core.ErrValidation)
	assert.Equal(t, 1, store.State().Ledger.Len(), "the rental stays open")
}

func Test_CommandHandler_Handle_Success_ReceiptDescribesCommittedAttempt(t *testing.T) {
	// arrange
	store := statestore.New(t, givenRentedBook(uuid.New(), "A", "Alice")...)
	store.FailNextCommits(1)
	handler := returnbooks.NewCommandHandler(store, returnbooks.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)))

	// act
	receipt, err := handler.Handle(context.Background(), returnbooks.BuildCommand([]string{"A"}, rentStart))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Count)
	assert.Equal(t, 2, receipt.RetryAttempts)
	assert.Len(t, store.Committed(), 1)
}
