package booksrentedout

import (
	"time"

	"github.com/AntonStoeckl/booklending/core"
)

// RentalInfo is one open rental.
type RentalInfo struct {
	BookID    core.BookIDString
	Title     string
	Borrower  core.BorrowerName
	RentStart time.Time
}

// BooksRentedOut represents the query result, oldest rental first.
type BooksRentedOut struct {
	Rentals        []RentalInfo
	Count          int
	SequenceNumber uint
}

// GetSequenceNumber returns the library version the projection was built from.
func (r BooksRentedOut) GetSequenceNumber() uint {
	return r.SequenceNumber
}
