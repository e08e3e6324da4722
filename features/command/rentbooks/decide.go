package rentbooks

import (
	"fmt"

	"github.com/AntonStoeckl/booklending/core"
)

// Decide determines which of the requested titles can be rented.
//
// Business Rules:
//
//	GIVEN: a list of titles and a borrower
//	WHEN: RentBooks command is received
//	THEN: one BookRentedToBorrower event per title whose first match is Available
//	SKIP: ErrNotFound if no book has the title
//	SKIP: ErrInvalidState if the first match is already rented
//	ERROR: ErrValidation if the borrower is empty, nothing is rented then
//	IDEMPOTENCY: if every title is skipped, no event is generated
//
// Titles are processed in order against a working copy, so a title repeated within one
// command sees the effect of its earlier occurrence.
func Decide(state core.State, command Command) core.DecisionResult {
	if command.Borrower == "" {
		return core.ErrorDecision(fmt.Errorf("borrower is empty: %w", core.ErrValidation))
	}

	working := state.Clone()
	events := make(core.DomainEvents, 0, len(command.Titles))
	var skipped []core.SkippedTitle

	for _, title := range command.Titles {
		book, found := working.Catalog.FindByTitle(title)
		if !found {
			skipped = append(skipped, core.SkippedTitle{
				Title:  title,
				Reason: fmt.Errorf("%q: %w", title, core.ErrNotFound),
			})
			continue
		}

		if book.Status != core.Available {
			skipped = append(skipped, core.SkippedTitle{
				Title:  title,
				Reason: fmt.Errorf("%q is %s: %w", title, book.Status, core.ErrInvalidState),
			})
			continue
		}

		event := core.BuildBookRentedToBorrower(book, command.Borrower, command.OccurredAt)
		if err := working.Evolve(event); err != nil {
			return core.ErrorDecision(err)
		}
		events = append(events, event)
	}

	return core.SuccessDecision(events, skipped...)
}
