package finishedrentals

import (
	"slices"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/journal"
)

// Project lists every completed rental in the history. Given a base result, it appends the
// returns in history to it, so history must only hold events after base.SequenceNumber.
//
// Query Logic:
//
//	GIVEN: all BookReturnedByBorrower events
//	WHEN: FinishedRentals query is executed
//	THEN: one RentalInfo per return, oldest return first, plus the summed amount
//	EXCLUDES: open rentals, rentals forfeited by a delete, other borrowers if the query names one
func Project(history core.DomainEvents, query Query, maxSequence uint, base ...FinishedRentals) FinishedRentals {
	result := FinishedRentals{
		Rentals:        make([]RentalInfo, 0, len(history)),
		SequenceNumber: maxSequence,
	}

	if len(base) > 0 {
		result.Rentals = append(result.Rentals, base[0].Rentals...)
		result.TotalAmount = base[0].TotalAmount
	}

	for _, event := range history {
		e, ok := event.(core.BookReturnedByBorrower)
		if !ok || (query.Borrower != "" && e.Borrower != query.Borrower) {
			continue
		}

		result.Rentals = append(result.Rentals, RentalInfo{
			BookID:     e.BookID,
			Title:      e.Title,
			Borrower:   e.Borrower,
			RentedAt:   e.RentedAt,
			ReturnedAt: e.OccurredAt,
			Days:       e.RentDays,
			Amount:     e.Amount,
		})
		result.TotalAmount += e.Amount
	}

	// history is in commit order already; equal timestamps keep it
	slices.SortStableFunc(result.Rentals, func(a, b RentalInfo) int {
		return a.ReturnedAt.Compare(b.ReturnedAt)
	})
	result.Count = len(result.Rentals)

	return result
}

// BuildEventFilter creates the filter for querying the return events the query asks for.
func BuildEventFilter(query Query) journal.Filter {
	filter := journal.MatchingTypes(core.BookReturnedByBorrowerEventType)

	if query.Borrower != "" {
		filter = filter.WithAnyPredicate(journal.P("Borrower", query.Borrower))
	}

	return filter
}
