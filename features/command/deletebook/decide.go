package deletebook

import (
	"fmt"

	"github.com/AntonStoeckl/booklending/core"
)

// Decide determines whether a book can be deleted.
//
// Business Rules:
//
//	GIVEN: a BookID
//	WHEN: DeleteBook command is received
//	THEN: BookDeletedFromCatalog event is generated; a pending rental is forfeited without fee
//	ERROR: ErrNotFound if no book has the id
func Decide(state core.State, command Command) core.DecisionResult {
	book, found := state.Catalog.ByID(command.BookID)
	if !found {
		return core.ErrorDecision(fmt.Errorf("book %s: %w", command.BookID, core.ErrNotFound))
	}

	var forfeited *core.RentalRecord
	if record, rented := state.Ledger.Lookup(book.ID); rented {
		forfeited = &record
	}

	return core.SuccessDecision(core.DomainEvents{
		core.BuildBookDeletedFromCatalog(book, forfeited, command.OccurredAt),
	})
}
