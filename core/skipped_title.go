package core

// SkippedTitle reports a title of a batch request that was not processed and why.
// Reason wraps ErrNotFound or ErrInvalidState.
type SkippedTitle struct {
	Title  string
	Reason error
}
