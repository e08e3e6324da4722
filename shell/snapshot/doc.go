// Package snapshot wraps query handlers so they resume from a stored projection
// and only fold the events appended since, instead of replaying the whole journal.
package snapshot
