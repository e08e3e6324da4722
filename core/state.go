package core

import (
	"fmt"
)

// State is the complete in-memory library: the Catalog and the Ledger derived alongside it.
type State struct {
	Catalog Catalog
	Ledger  Ledger
}

// NewState returns an empty library.
func NewState() State {
	return State{}
}

// Clone returns a deep copy that can be evolved without affecting the original.
func (s State) Clone() State {
	return State{
		Catalog: s.Catalog.clone(),
		Ledger:  s.Ledger.clone(),
	}
}

// Evolve applies events in order. It stops at the first event whose precondition does not hold
// and returns an error wrapping ErrNotFound or ErrInvalidState; the receiver may then be partially
// evolved, so callers evolve a Clone and keep it only on success.
func (s *State) Evolve(events ...DomainEvent) error {
	for _, event := range events {
		if err := s.evolve(event); err != nil {
			return fmt.Errorf("%s: %w", event.EventType(), err)
		}
	}

	return nil
}

func (s *State) evolve(event DomainEvent) error {
	switch e := event.(type) {
	case BookAddedToCatalog:
		if _, exists := s.Catalog.ByID(e.BookID); exists {
			return fmt.Errorf("book %s already added: %w", e.BookID, ErrInvalidState)
		}
		s.Catalog.add(Book{
			ID:     e.BookID,
			Title:  e.Title,
			Author: e.Author,
			Shelf:  e.Shelf,
			Status: Available,
		})

	case BookRentedToBorrower:
		book, ok := s.Catalog.ByID(e.BookID)
		if !ok {
			return fmt.Errorf("book %s: %w", e.BookID, ErrNotFound)
		}
		if book.Status != Available {
			return fmt.Errorf("book %s is %s: %w", e.BookID, book.Status, ErrInvalidState)
		}
		s.Catalog.setStatus(e.BookID, Rented)
		s.Ledger.open(RentalRecord{
			BookID:    e.BookID,
			Title:     book.Title,
			Borrower:  e.Borrower,
			RentStart: e.OccurredAt,
		})

	case BookReturnedByBorrower:
		book, ok := s.Catalog.ByID(e.BookID)
		if !ok {
			return fmt.Errorf("book %s: %w", e.BookID, ErrNotFound)
		}
		if book.Status != Rented {
			return fmt.Errorf("book %s is %s: %w", e.BookID, book.Status, ErrInvalidState)
		}
		s.Catalog.setStatus(e.BookID, Available)
		s.Ledger.close(e.BookID)

	case BookDeletedFromCatalog:
		if !s.Catalog.remove(e.BookID) {
			return fmt.Errorf("book %s: %w", e.BookID, ErrNotFound)
		}
		s.Ledger.close(e.BookID) // a pending rental is forfeited
	}

	return nil
}

// CheckInvariant verifies that every Rented book has exactly one RentalRecord and that
// no record exists for an Available or unknown book.
func (s State) CheckInvariant() error {
	for _, b := range s.Catalog.books {
		_, hasRecord := s.Ledger.Lookup(b.ID)
		if b.Status == Rented && !hasRecord {
			return fmt.Errorf("rented book %s has no rental record: %w", b.ID, ErrInvalidState)
		}
		if b.Status == Available && hasRecord {
			return fmt.Errorf("available book %s has a rental record: %w", b.ID, ErrInvalidState)
		}
	}

	for id := range s.Ledger.records {
		if _, ok := s.Catalog.ByID(id); !ok {
			return fmt.Errorf("rental record for unknown book %s: %w", id, ErrNotFound)
		}
	}

	return nil
}
