package journal

import (
	"errors"
)

// ErrConcurrencyConflict is returned by Append when the journal moved past the expected sequence number.
var ErrConcurrencyConflict = errors.New("concurrency conflict, the journal has changed")

// ErrNoEventsToAppend is returned when Append is called without events.
var ErrNoEventsToAppend = errors.New("no events to append")

// MaxSequenceNumberUint is the highest sequence number in the journal at the time of a Query.
type MaxSequenceNumberUint = uint
