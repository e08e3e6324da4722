// Package memoryengine implements the journal in process memory.
//
// The Engine is safe for concurrent use. Query returns the events matching a filter
// together with the highest sequence number among them. Append takes the same filter and
// that number back and fails with journal.ErrConcurrencyConflict if another matching event
// was appended in between, which makes the filter the consistency boundary of a decision.
//
// Nothing is persisted: the journal is gone when the process exits. Export writes the current
// contents as JSON lines to an io.Writer.
//
// The Engine also keeps the latest projection Snapshot per projection type and filter hash,
// so query handlers can resume from it instead of replaying every event.
package memoryengine
