// Package deletebook implements the Delete Book from Catalog use case.
//
// The librarian removes one book, picked by id. Deleting a rented book is allowed: its rental is
// forfeited without a fee and the result says who had it.
package deletebook
