// Package returnbooks implements the Return Books use case.
//
// Books come back in a batch. Each returned book is billed for every started rent day at the
// configured rate, and the handler answers with a Receipt listing one line per book plus the total.
// Titles that are unknown or not rented are skipped and reported, they never fail the batch.
package returnbooks
