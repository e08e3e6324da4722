package core

import (
	"time"
)

// BookDeletedFromCatalogEventType is the event type identifier.
const BookDeletedFromCatalogEventType = "BookDeletedFromCatalog"

// BookDeletedFromCatalog represents when a book is removed from the library.
// If it was rented at that moment, the rental is forfeited and Borrower names who had it.
type BookDeletedFromCatalog struct {
	BookID     BookIDString
	Title      string
	WasRented  bool
	Borrower   BorrowerName
	OccurredAt OccurredAt
}

// BuildBookDeletedFromCatalog creates a new BookDeletedFromCatalog event.
// record is nil when the book was Available.
func BuildBookDeletedFromCatalog(book Book, record *RentalRecord, occurredAt time.Time) BookDeletedFromCatalog {
	event := BookDeletedFromCatalog{
		BookID:     book.ID,
		Title:      book.Title,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	if record != nil {
		event.WasRented = true
		event.Borrower = record.Borrower
	}

	return event
}

// EventType returns the event type identifier.
func (e BookDeletedFromCatalog) EventType() string {
	return BookDeletedFromCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookDeletedFromCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}
