package returnbooks

import (
	"fmt"

	"github.com/AntonStoeckl/booklending/core"
)

// Decide determines which of the given titles can be returned and prices each return.
//
// Business Rules:
//
//	GIVEN: a list of titles and the rate per day
//	WHEN: ReturnBooks command is received
//	THEN: one BookReturnedByBorrower event per title whose first match is Rented,
//	      billed (whole days elapsed + 1) x rate
//	SKIP: ErrNotFound if no book has the title
//	SKIP: ErrInvalidState if the first match is not rented
//	ERROR: ErrValidation if the rate is not positive
//	IDEMPOTENCY: if every title is skipped, no event is generated
func Decide(state core.State, command Command, ratePerDay int64) core.DecisionResult {
	if ratePerDay <= 0 {
		return core.ErrorDecision(fmt.Errorf("rate per day %d is not positive: %w", ratePerDay, core.ErrValidation))
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

		record, rented := working.Ledger.Lookup(book.ID)
		if book.Status != core.Rented || !rented {
			skipped = append(skipped, core.SkippedTitle{
				Title:  title,
				Reason: fmt.Errorf("%q is %s: %w", title, book.Status, core.ErrInvalidState),
			})
			continue
		}

		event := core.BuildBookReturnedByBorrower(record, ratePerDay, command.OccurredAt)
		if err := working.Evolve(event); err != nil {
			return core.ErrorDecision(err)
		}
		events = append(events, event)
	}

	return core.SuccessDecision(events, skipped...)
}
