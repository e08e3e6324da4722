package rentbooks_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/features/command/rentbooks"
)

var epoch = time.Unix(0, 0).UTC()

func givenState(t *testing.T, events ...core.DomainEvent) core.State {
	t.Helper()

	state := core.NewState()
	require.NoError(t, state.Evolve(events...))

	return state
}

func givenBookAdded(bookID uuid.UUID, title string) core.BookAddedToCatalog {
	return core.BuildBookAddedToCatalog(bookID, title, "Author", "A1", epoch)
}

func givenBookRented(bookID uuid.UUID, title, borrower string) core.BookRentedToBorrower {
	return core.BuildBookRentedToBorrower(core.Book{ID: bookID.String(), Title: title}, borrower, epoch.Add(time.Hour))
}

func Test_Decide_Success_WithSkips_WhenBatchMixesAvailableRentedAndUnknown(t *testing.T) {
	// arrange
	bookA, bookB := uuid.New(), uuid.New()
	state := givenState(t,
		givenBookAdded(bookA, "A"),
		givenBookAdded(bookB, "B"),
		givenBookRented(bookB, "B", "Bob"),
	)
	now := epoch.Add(48 * time.Hour)
	command := rentbooks.BuildCommand([]string{"A", "B", "NotExist"}, "Alice", now)

	// act
	result := rentbooks.Decide(state, command)

	// assert
	require.True(t, result.HasEventsToAppend())
	require.Len(t, result.Events, 1)
	event, ok := result.Events[0].(core.BookRentedToBorrower)
	require.True(t, ok)
	assert.Equal(t, bookA.String(), event.BookID)
	assert.Equal(t, "Alice", event.Borrower)
	assert.Equal(t, now, event.OccurredAt)

	require.Len(t, result.Skipped, 2)
	assert.Equal(t, "B", result.Skipped[0].Title)
	assert.ErrorIs(t, result.Skipped[0].Reason, core.ErrInvalidState)
	assert.Equal(t, "NotExist", result.Skipped[1].Title)
	assert.ErrorIs(t, result.Skipped[1].Reason, core.ErrNotFound)
}

func Test_Decide_Success_WhenTitleMatchesCaseInsensitively(t *testing.T) {
	// arrange
	bookID := uuid.New()
	state := givenState(t, givenBookAdded(bookID, "Python Basics"))
	command := rentbooks.BuildCommand([]string{"  PYTHON basics "}, "Alice", epoch)

	// act
	result := rentbooks.Decide(state, command)

	// assert
	require.Len(t, result.Events, 1)
	assert.Equal(t, bookID.String(), result.Events[0].(core.BookRentedToBorrower).BookID)
}

func Test_Decide_Success_SecondOccurrenceSkipped_WhenTitleRepeatedInBatch(t *testing.T) {
	// arrange
	state := givenState(t, givenBookAdded(uuid.New(), "DBMS Concepts"))
	command := rentbooks.BuildCommand([]string{"DBMS Concepts", "dbms concepts"}, "Alice", epoch)

	// act
	result := rentbooks.Decide(state, command)

	// assert
	assert.Len(t, result.Events, 1)
	require.Len(t, result.Skipped, 1)
	assert.ErrorIs(t, result.Skipped[0].Reason, core.ErrInvalidState)
}

func Test_Decide_Success_SecondCopySkipped_WhenFirstMatchIsRented(t *testing.T) {
	// arrange
	first, second := uuid.New(), uuid.New()
	state := givenState(t,
		givenBookAdded(first, "Operating System"),
		givenBookAdded(second, "Operating System"),
		givenBookRented(first, "Operating System", "Bob"),
	)
	command := rentbooks.BuildCommand([]string{"Operating System"}, "Alice", epoch)

	// act
	result := rentbooks.Decide(state, command)

	// assert
	assert.True(t, result.IsIdempotent(), "lookup resolves to the first book added")
	require.Len(t, result.Skipped, 1)
	assert.ErrorIs(t, result.Skipped[0].Reason, core.ErrInvalidState)
}

func Test_Decide_Idempotent_WhenEveryTitleSkipped(t *testing.T) {
	// arrange
	command := rentbooks.BuildCommand([]string{"Nope", "Neither"}, "Alice", epoch)

	// act
	result := rentbooks.Decide(core.NewState(), command)

	// assert
	assert.True(t, result.IsIdempotent())
	assert.Len(t, result.Skipped, 2)
}

func Test_Decide_Idempotent_WhenNoTitlesGiven(t *testing.T) {
	// act
	result := rentbooks.Decide(core.NewState(), rentbooks.BuildCommand(nil, "Alice", epoch))

	// assert
	assert.True(t, result.IsIdempotent())
	assert.Empty(t, result.Skipped)
}

func Test_Decide_Error_WhenBorrowerEmpty(t *testing.T) {
	// arrange
	state := givenState(t, givenBookAdded(uuid.New(), "A"))
	command := rentbooks.BuildCommand([]string{"A"}, "   ", epoch)

	// act
	result := rentbooks.Decide(state, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrValidation)
	assert.Empty(t, result.Events)
}

func Test_Decide_DoesNotModifyGivenState(t *testing.T) {
	// arrange
	state := givenState(t, givenBookAdded(uuid.New(), "A"))

	// act
	_ = rentbooks.Decide(state, rentbooks.BuildCommand([]string{"A"}, "Alice", epoch))

	// assert
	book, _ := state.Catalog.FindByTitle("A")
	assert.Equal(t, core.Available, book.Status)
	assert.Equal(t, 0, state.Ledger.Len())
}
