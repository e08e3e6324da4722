package core

import "time"

// BookStatus is the rental status of a single book.
type BookStatus int

const (
	// Available means the book is on its shelf and can be rented.
	Available BookStatus = iota

	// Rented means the book is checked out and the Ledger holds its RentalRecord.
	Rented
)

// String returns the lower-case status name shown to librarians.
func (s BookStatus) String() string {
	switch s {
	case Available:
		return "available"
	case Rented:
		return "rented"
	default:
		return "unknown"
	}
}

// Book is one physical book in the catalog.
//
// Title is the lookup key but not unique: two books may share a title, and title lookups
// then resolve to the one added first. ID is assigned on insert and never reused.
type Book struct {
	ID     BookIDString
	Title  string
	Author string
	Shelf  string
	Status BookStatus
}

// RentalRecord ties a rented book to its borrower and the moment the rental started.
// It is created when a book is rented and dropped when the book is returned or deleted.
type RentalRecord struct {
	BookID    BookIDString
	Title     string
	Borrower  BorrowerName
	RentStart time.Time
}
