package core

import (
	"time"
)

// BookReturnedByBorrowerEventType is the event type identifier.
const BookReturnedByBorrowerEventType = "BookReturnedByBorrower"

// BookReturnedByBorrower represents when a rented book is checked back in and the fee is charged.
type BookReturnedByBorrower struct {
	BookID     BookIDString
	Title      string
	Borrower   BorrowerName
	RentedAt   time.Time
	RentDays   int64
	Amount     int64
	OccurredAt OccurredAt
}

// BuildBookReturnedByBorrower creates a new BookReturnedByBorrower event and prices the rental
// with the given rate.
func BuildBookReturnedByBorrower(record RentalRecord, ratePerDay int64, occurredAt time.Time) BookReturnedByBorrower {
	days := RentDays(record.RentStart, occurredAt)

	return BookReturnedByBorrower{
		BookID:     record.BookID,
		Title:      record.Title,
		Borrower:   record.Borrower,
		RentedAt:   record.RentStart,
		RentDays:   days,
		Amount:     RentalFee(days, ratePerDay),
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReturnedByBorrower) EventType() string {
	return BookReturnedByBorrowerEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturnedByBorrower) HasOccurredAt() time.Time {
	return e.OccurredAt
}
