package core

import (
	"maps"
	"slices"
	"strings"
)

// Ledger holds the active rentals, keyed by book id.
type Ledger struct {
	records map[BookIDString]RentalRecord
}

// Lookup returns the rental record of a book if it is currently rented.
func (l Ledger) Lookup(id BookIDString) (RentalRecord, bool) {
	r, ok := l.records[id]
	return r, ok
}

// Len returns the number of active rentals.
func (l Ledger) Len() int {
	return len(l.records)
}

// Records returns all active rentals, oldest rent start first and by title for equal starts.
func (l Ledger) Records() []RentalRecord {
	records := slices.Collect(maps.Values(l.records))
	slices.SortFunc(records, func(a, b RentalRecord) int {
		if c := a.RentStart.Compare(b.RentStart); c != 0 {
			return c
		}
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.BookID, b.BookID)
	})

	return records
}

func (l *Ledger) open(r RentalRecord) {
	if l.records == nil {
		l.records = make(map[BookIDString]RentalRecord)
	}
	l.records[r.BookID] = r
}

func (l *Ledger) close(id BookIDString) {
	delete(l.records, id)
}

func (l Ledger) clone() Ledger {
	return Ledger{records: maps.Clone(l.records)}
}
