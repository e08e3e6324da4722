package finishedrentals

import (
	"strings"

	"github.com/AntonStoeckl/booklending/core"
)

const (
	queryType    = "FinishedRentals"
	snapshotType = "FinishedRentals"
)

// Query represents the input for listing completed rentals.
// An empty Borrower lists everyone's rentals, otherwise only that borrower's (exact, case-sensitive match).
type Query struct {
	Borrower core.BorrowerName
}

// BuildQuery creates a new Query for all borrowers.
func BuildQuery() Query {
	return Query{}
}

// BuildQueryForBorrower creates a new Query limited to one borrower. Surrounding whitespace is trimmed.
func BuildQueryForBorrower(borrower core.BorrowerName) Query {
	return Query{Borrower: strings.TrimSpace(borrower)}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// SnapshotType returns the projection type under which snapshots of the result are stored.
// Snapshots of different borrowers are told apart by the filter hash.
func (q Query) SnapshotType() string {
	return snapshotType
}
