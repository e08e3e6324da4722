// Package booksrentedout answers who has which book since when.
//
// The projection reads the Rental Ledger of a state snapshot; it never touches the journal.
package booksrentedout
