package booksrentedout

import (
	"github.com/AntonStoeckl/booklending/core"
)

// Project lists the open rentals of a state snapshot.
//
// Query Logic:
//
//	GIVEN: a state snapshot and its version
//	WHEN: BooksRentedOut query is executed
//	THEN: one RentalInfo per rented book, oldest rent start first, ties by title
func Project(state core.State, _ Query, version uint) BooksRentedOut {
	records := state.Ledger.Records()

	rentals := make([]RentalInfo, 0, len(records))
	for _, r := range records {
		rentals = append(rentals, RentalInfo{
			BookID:    r.BookID,
			Title:     r.Title,
			Borrower:  r.Borrower,
			RentStart: r.RentStart,
		})
	}

	return BooksRentedOut{
		Rentals:        rentals,
		Count:          len(rentals),
		SequenceNumber: version,
	}
}
