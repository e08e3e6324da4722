// Package journal provides the abstractions of the library's append-only event journal.
//
// Every change to the library is recorded as a StorableEvent with a sequence number.
// A Filter selects the events a reader is interested in, and appends are guarded by the
// highest sequence number the writer has seen, so two writers that decided on the same
// state cannot both succeed.
//
// The journal lives only in memory for the lifetime of the process. See the memoryengine
// package for the implementation.
//
// Typical usage:
//
//	filter := journal.MatchingTypes(core.BookReturnedByBorrowerEventType).
//		WithAnyPredicate(journal.P("Borrower", "Alice"))
//
//	events, maxSeq, err := engine.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	err = engine.Append(ctx, filter, maxSeq, newEvents...)
package journal
