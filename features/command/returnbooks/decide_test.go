package returnbooks_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/features/command/returnbooks"
)

var rentStart = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func givenState(t *testing.T, events ...core.DomainEvent) core.State {
	t.Helper()

	state := core.NewState()
	require.NoError(t, state.Evolve(events...))

	return state
}

func givenRentedBook(bookID uuid.UUID, title, borrower string) []core.DomainEvent {
	return []core.DomainEvent{
		core.BuildBookAddedToCatalog(bookID, title, "Author", "B1", rentStart.Add(-time.Hour)),
		core.BuildBookRentedToBorrower(core.Book{ID: bookID.String(), Title: title}, borrower, rentStart),
	}
}

func Test_Decide_Fees(t *testing.T) {
	testCases := []struct {
		name           string
		elapsed        time.Duration
		rate           int64
		expectedDays   int64
		expectedAmount int64
	}{
		{name: "same instant", elapsed: 0, rate: 10, expectedDays: 1, expectedAmount: 10},
		{name: "36 hours", elapsed: 36 * time.Hour, rate: 10, expectedDays: 2, expectedAmount: 20},
		{name: "exactly one day", elapsed: 24 * time.Hour, rate: 10, expectedDays: 2, expectedAmount: 20},
		{name: "custom rate", elapsed: 5 * 24 * time.Hour, rate: 3, expectedDays: 6, expectedAmount: 18},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			bookID := uuid.New()
			state := givenState(t, givenRentedBook(bookID, "Data Structures", "Alice")...)
			command := returnbooks.BuildCommand([]string{"Data Structures"}, rentStart.Add(tc.elapsed))

			// act
			result := returnbooks.Decide(state, command, tc.rate)

			// assert
			require.Len(t, result.Events, 1)
			event, ok := result.Events[0].(core.BookReturnedByBorrower)
			require.True(t, ok)
			assert.Equal(t, bookID.String(), event.BookID)
			assert.Equal(t, "Alice", event.Borrower)
			assert.Equal(t, tc.expectedDays, event.RentDays)
			assert.Equal(t, tc.expectedAmount, event.Amount)
		})
	}
}

func Test_Decide_Success_WithSkips_WhenBatchMixesRentedAvailableAndUnknown(t *testing.T) {
	// arrange
	events := givenRentedBook(uuid.New(), "A", "Alice")
	events = append(events, core.BuildBookAddedToCatalog(uuid.New(), "B", "Author", "B2", rentStart))
	state := givenState(t, events...)
	command := returnbooks.BuildCommand([]string{"A", "B", "NotExist"}, rentStart)

	// act
	result := returnbooks.Decide(state, command, core.DefaultRatePerDay)

	// assert
	assert.Len(t, result.Events, 1)
	require.Len(t, result.Skipped, 2)
	assert.ErrorIs(t, result.Skipped[0].Reason, core.ErrInvalidState)
	assert.ErrorIs(t, result.Skipped[1].Reason, core.ErrNotFound)
}

func Test_Decide_Success_SecondOccurrenceSkipped_WhenTitleRepeatedInBatch(t *testing.T) {
	// arrange
	state := givenState(t, givenRentedBook(uuid.New(), "A", "Alice")...)
	command := returnbooks.BuildCommand([]string{"A", "a"}, rentStart)

	// act
	result := returnbooks.Decide(state, command, core.DefaultRatePerDay)

	// assert
	assert.Len(t, result.Events, 1)
	require.Len(t, result.Skipped, 1)
	assert.ErrorIs(t, result.Skipped[0].Reason, core.ErrInvalidState)
}

func Test_Decide_Idempotent_WhenNothingRented(t *testing.T) {
	// arrange
	state := givenState(t, core.BuildBookAddedToCatalog(uuid.New(), "A", "Author", "B2", rentStart))

	// act
	result := returnbooks.Decide(state, returnbooks.BuildCommand([]string{"A"}, rentStart), core.DefaultRatePerDay)

	// assert
	assert.True(t, result.IsIdempotent())
	assert.Len(t, result.Skipped, 1)
}

func Test_Decide_Error_WhenRateNotPositive(t *testing.T) {
	for _, rate := range []int64{0, -5} {
		// arrange
		state := givenState(t, givenRentedBook(uuid.New(), "A", "Alice")...)

		// act
		result := returnbooks.Decide(state, returnbooks.BuildCommand([]string{"A"}, rentStart), rate)

		// assert
		assert.ErrorIs(t, result.HasError(), core.ErrValidation)
	}
}
