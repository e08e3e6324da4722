package core

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// BookIDString represents a book identifier (UUID format).
type BookIDString = string

// BorrowerName represents the free-text name of the person renting a book.
type BorrowerName = string

// OccurredAt represents when an event occurred.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization. Full nanosecond precision is kept,
// rent days are computed from these values.
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC()
}

// TitleKey returns the lookup key for a title: surrounding whitespace removed and Unicode case folded,
// so "python basics" and "Python Basics " resolve to the same book.
func TitleKey(title string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(title))
}
