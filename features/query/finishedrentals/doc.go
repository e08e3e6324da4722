// Package finishedrentals provides the history of completed rentals and the revenue they brought in.
//
// It is the only query that reads the journal: returned rentals are no longer in the library state,
// so the projection is built from BookReturnedByBorrower events. Rentals forfeited by a delete
// never produce such an event and are not listed. A query naming a borrower reads only that
// borrower's returns, selected by a payload predicate on the journal filter.
package finishedrentals
