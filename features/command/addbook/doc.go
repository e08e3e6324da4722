// Package addbook implements the Add Book to Catalog use case.
//
// A librarian puts a new book on a shelf. Title, author and shelf are required; titles need not be
// unique, so each book gets its own BookID and a later title lookup resolves to the first one added.
// It follows the Snapshot-Decide-Commit pattern: the CommandHandler owns infrastructure and retry,
// Decide is a pure function over the library state.
package addbook
