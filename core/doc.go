// Package core contains the domain model of the lending library:
// books on the shelves, the rental ledger and the events that move
// a book between Available and Rented.
//
// The Catalog owns the book records in insertion order, the Ledger holds one
// RentalRecord per rented book, and State combines both. State only changes
// through Evolve, which applies domain events, so a book is Rented exactly
// when the Ledger holds a record for it.
//
// Nothing in this package reads the wall clock. Timestamps always arrive as
// part of a command or event.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
