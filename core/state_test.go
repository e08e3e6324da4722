package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/booklending/core"
)

func Test_Evolve_Success_AddRentReturnRoundTrip(t *testing.T) {
	// arrange
	s := core.NewState()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	added := core.BuildBookAddedToCatalog(uuid.New(), "Python Basics", "Mark Lutz", "A1", now)

	// act
	require.NoError(t, s.Evolve(added))
	book, _ := s.Catalog.ByID(added.BookID)
	rented := core.BuildBookRentedToBorrower(book, "Alice", now.Add(time.Hour))
	require.NoError(t, s.Evolve(rented))
	record, ok := s.Ledger.Lookup(added.BookID)
	require.True(t, ok)
	returned := core.BuildBookReturnedByBorrower(record, core.DefaultRatePerDay, now.Add(37*time.Hour))
	require.NoError(t, s.Evolve(returned))

	// assert
	book, ok = s.Catalog.ByID(added.BookID)
	require.True(t, ok)
	assert.Equal(t, core.Available, book.Status)
	assert.Equal(t, 0, s.Ledger.Len())
	assert.Equal(t, int64(2), returned.RentDays)
	assert.Equal(t, int64(20), returned.Amount)
	assert.NoError(t, s.CheckInvariant())
}

func Test_Evolve_Error_WhenRentingRentedBook(t *testing.T) {
	// arrange
	s := core.NewState()
	now := time.Now()
	added := core.BuildBookAddedToCatalog(uuid.New(), "DBMS Concepts", "Korth", "D3", now)
	require.NoError(t, s.Evolve(added))
	book, _ := s.Catalog.ByID(added.BookID)
	require.NoError(t, s.Evolve(core.BuildBookRentedToBorrower(book, "Alice", now)))

	// act
	err := s.Evolve(core.BuildBookRentedToBorrower(book, "Bob", now))

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidState)
	record, _ := s.Ledger.Lookup(added.BookID)
	assert.Equal(t, "Alice", record.Borrower)
}

func Test_Evolve_Error_WhenReturningUnknownBook(t *testing.T) {
	// arrange
	s := core.NewState()
	record := core.RentalRecord{BookID: uuid.NewString(), Title: "Ghost", Borrower: "Alice", RentStart: time.Now()}

	// act
	err := s.Evolve(core.BuildBookReturnedByBorrower(record, core.DefaultRatePerDay, time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func Test_Evolve_Success_DeleteRentedBookForfeitsRental(t *testing.T) {
	// arrange
	s := core.NewState()
	now := time.Now()
	added := core.BuildBookAddedToCatalog(uuid.New(), "Java Programming", "James Gosling", "E2", now)
	require.NoError(t, s.Evolve(added))
	book, _ := s.Catalog.ByID(added.BookID)
	require.NoError(t, s.Evolve(core.BuildBookRentedToBorrower(book, "Carol", now)))
	record, _ := s.Ledger.Lookup(added.BookID)

	// act
	deleted := core.BuildBookDeletedFromCatalog(book, &record, now.Add(time.Hour))
	err := s.Evolve(deleted)

	// assert
	require.NoError(t, err)
	assert.True(t, deleted.WasRented)
	assert.Equal(t, "Carol", deleted.Borrower)
	assert.Equal(t, 0, s.Catalog.Len())
	assert.Equal(t, 0, s.Ledger.Len())
	_, found := s.Catalog.FindByTitle("Java Programming")
	assert.False(t, found)
}

func Test_Clone_IsIndependentOfOriginal(t *testing.T) {
	// arrange
	s := core.NewState()
	now := time.Now()
	added := core.BuildBookAddedToCatalog(uuid.New(), "Operating System", "Galvin", "C2", now)
	require.NoError(t, s.Evolve(added))
	book, _ := s.Catalog.ByID(added.BookID)

	// act
	clone := s.Clone()
	require.NoError(t, clone.Evolve(core.BuildBookRentedToBorrower(book, "Dave", now)))

	// assert
	original, _ := s.Catalog.ByID(added.BookID)
	assert.Equal(t, core.Available, original.Status)
	assert.Equal(t, 0, s.Ledger.Len())
	assert.Equal(t, 1, clone.Ledger.Len())
}

func Test_FindByTitle_FirstMatchInInsertionOrder_CaseInsensitive(t *testing.T) {
	// arrange
	s := core.NewState()
	now := time.Now()
	first := core.BuildBookAddedToCatalog(uuid.New(), "Data Structures", "Narasimha Karumanchi", "B1", now)
	second := core.BuildBookAddedToCatalog(uuid.New(), "data structures", "Someone Else", "B2", now)
	require.NoError(t, s.Evolve(first, second))

	// act
	book, ok := s.Catalog.FindByTitle("  DATA STRUCTURES ")

	// assert
	require.True(t, ok)
	assert.Equal(t, first.BookID, book.ID)
	assert.Len(t, s.Catalog.ListAll(), 2)
}

func Test_Ledger_Records_OrderedByRentStart(t *testing.T) {
	// arrange
	s := core.NewState()
	now := time.Now()
	a := core.BuildBookAddedToCatalog(uuid.New(), "A", "x", "1", now)
	b := core.BuildBookAddedToCatalog(uuid.New(), "B", "y", "2", now)
	require.NoError(t, s.Evolve(a, b))
	bookA, _ := s.Catalog.ByID(a.BookID)
	bookB, _ := s.Catalog.ByID(b.BookID)
	require.NoError(t, s.Evolve(
		core.BuildBookRentedToBorrower(bookB, "Bob", now.Add(time.Minute)),
		core.BuildBookRentedToBorrower(bookA, "Alice", now.Add(2*time.Minute)),
	))

	// act
	records := s.Ledger.Records()

	// assert
	require.Len(t, records, 2)
	assert.Equal(t, "B", records[0].Title)
	assert.Equal(t, "A", records[1].Title)
}
