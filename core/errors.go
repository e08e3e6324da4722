package core

import "errors"

var (
	// ErrNotFound is returned when no book matches a title or an id.
	ErrNotFound = errors.New("book not found")

	// ErrInvalidState is returned when a book is not in the status an operation requires,
	// e.g. renting a book that is already rented.
	ErrInvalidState = errors.New("book is in the wrong status")

	// ErrValidation is returned when a request is refused before any state change,
	// e.g. an empty borrower name.
	ErrValidation = errors.New("validation failed")
)
