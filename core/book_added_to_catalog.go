package core

import (
	"time"

	"github.com/google/uuid"
)

// BookAddedToCatalogEventType is the event type identifier.
const BookAddedToCatalogEventType = "BookAddedToCatalog"

// BookAddedToCatalog represents when a book is put on a shelf of the library.
type BookAddedToCatalog struct {
	BookID     BookIDString
	Title      string
	Author     string
	Shelf      string
	OccurredAt OccurredAt
}

// BuildBookAddedToCatalog creates a new BookAddedToCatalog event.
func BuildBookAddedToCatalog(
	bookID uuid.UUID,
	title string,
	author string,
	shelf string,
	occurredAt time.Time,
) BookAddedToCatalog {

	return BookAddedToCatalog{
		BookID:     bookID.String(),
		Title:      title,
		Author:     author,
		Shelf:      shelf,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookAddedToCatalog) EventType() string {
	return BookAddedToCatalogEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAddedToCatalog) HasOccurredAt() time.Time {
	return e.OccurredAt
}
