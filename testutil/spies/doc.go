// Package spies provides recording test doubles for the journal's observability interfaces:
// metrics collector, tracing collector and contextual logger.
//
// All spies are safe for concurrent use and hand out copies of what they recorded.
package spies
