// Package rentbooks implements the Rent Books to Borrower use case.
//
// A borrower takes home a list of titles at once. Every title is looked up on its own, in order:
// titles that are unknown or already rented are skipped and reported, the rest are rented with
// the command's timestamp as rent start. The result counts only the books actually rented.
package rentbooks
