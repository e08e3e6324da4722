// Package shell contains the imperative parts shared by all feature slices: mapping domain
// events to and from the journal's storable form, retrying commits on concurrency conflicts,
// and the observability helpers used by command wrappers.
//
// In Hexagonal Architecture terms this is adapter code; it never decides anything about books.
package shell
