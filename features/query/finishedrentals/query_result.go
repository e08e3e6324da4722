package finishedrentals

import (
	"time"

	"github.com/AntonStoeckl/booklending/core"
)

// RentalInfo is one completed rental and what was charged for it.
type RentalInfo struct {
	BookID     core.BookIDString
	Title      string
	Borrower   core.BorrowerName
	RentedAt   time.Time
	ReturnedAt time.Time
	Days       int64
	Amount     int64
}

// FinishedRentals represents the query result, oldest return first.
type FinishedRentals struct {
	Rentals        []RentalInfo
	Count          int
	TotalAmount    int64
	SequenceNumber uint
}

// GetSequenceNumber returns the sequence number of the last event used to build the projection.
func (r FinishedRentals) GetSequenceNumber() uint {
	return r.SequenceNumber
}
