package core

import (
	"time"
)

// BookRentedToBorrowerEventType is the event type identifier.
const BookRentedToBorrowerEventType = "BookRentedToBorrower"

// BookRentedToBorrower represents when a book is checked out. OccurredAt is the rent start.
type BookRentedToBorrower struct {
	BookID     BookIDString
	Title      string
	Borrower   BorrowerName
	OccurredAt OccurredAt
}

// BuildBookRentedToBorrower creates a new BookRentedToBorrower event.
func BuildBookRentedToBorrower(book Book, borrower BorrowerName, occurredAt time.Time) BookRentedToBorrower {
	return BookRentedToBorrower{
		BookID:     book.ID,
		Title:      book.Title,
		Borrower:   borrower,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookRentedToBorrower) EventType() string {
	return BookRentedToBorrowerEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookRentedToBorrower) HasOccurredAt() time.Time {
	return e.OccurredAt
}
