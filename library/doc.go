// Package library provides Library, the owned instance a presentation layer talks to.
//
// A Library holds the Catalog and the Rental Ledger as one core.State, the version of that state,
// and the in-memory journal of every event that produced it. All mutations go through the command
// handlers of the feature slices: they read a snapshot with CurrentState, decide, and Commit with
// the version they read. Commit is serialized; a stale version fails with
// journal.ErrConcurrencyConflict and the handler retries on a fresh snapshot.
//
// Nothing is persisted. ExportJournal writes the journal to a stream on request.
package library
