package booksrentedout_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/features/query/booksrentedout"
	"github.com/AntonStoeckl/booklending/testutil/statestore"
)

func Test_QueryHandler_Handle_OldestRentalFirst(t *testing.T) {
	// arrange
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	early, late, idle := uuid.New(), uuid.New(), uuid.New()
	store := statestore.New(t,
		core.BuildBookAddedToCatalog(late, "Zebra Tales", "X", "A1", start),
		core.BuildBookAddedToCatalog(early, "Algorithms", "Y", "A2", start),
		core.BuildBookAddedToCatalog(idle, "Idle", "Z", "A3", start),
		core.BuildBookRentedToBorrower(core.Book{ID: late.String(), Title: "Zebra Tales"}, "Bob", start.Add(2*time.Hour)),
		core.BuildBookRentedToBorrower(core.Book{ID: early.String(), Title: "Algorithms"}, "Alice", start.Add(time.Hour)),
	)
	handler := booksrentedout.NewQueryHandler(store)

	// act
	result, err := handler.Handle(context.Background(), booksrentedout.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, uint(5), result.GetSequenceNumber())
	require.Len(t, result.Rentals, 2)
	assert.Equal(t, booksrentedout.RentalInfo{
		BookID:    early.String(),
		Title:     "Algorithms",
		Borrower:  "Alice",
		RentStart: start.Add(time.Hour),
	}, result.Rentals[0])
	assert.Equal(t, "Bob", result.Rentals[1].Borrower)
}

func Test_QueryHandler_Handle_Empty_WhenNothingRented(t *testing.T) {
	// arrange
	handler := booksrentedout.NewQueryHandler(statestore.New(t))

	// act
	result, err := handler.Handle(context.Background(), booksrentedout.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Rentals)
}

func Test_QueryHandler_Handle_Error_WhenContextCanceled(t *testing.T) {
	// arrange
	handler := booksrentedout.NewQueryHandler(statestore.New(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err := handler.Handle(ctx, booksrentedout.BuildQuery())

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}
