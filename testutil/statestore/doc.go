// Package statestore provides an in-memory state store for command handler tests.
// It can be told to reject the next commits with journal.ErrConcurrencyConflict.
package statestore
