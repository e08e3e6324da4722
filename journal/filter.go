package journal

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"
)

// Predicate matches a top-level payload field against a string value.
type Predicate struct {
	key string
	val string
}

// P creates a Predicate.
func P(key, val string) Predicate {
	return Predicate{key: key, val: val}
}

// Filter selects journal events. The zero value matches every event.
//
// A Filter combines its parts with AND: the event type must be one of the filter's types (if any),
// the payload must satisfy at least one predicate (if any), and the sequence number must be
// above the bound set with WithSequenceNumberHigherThan.
type Filter struct {
	eventTypes    []string
	predicates    []Predicate
	afterSequence MaxSequenceNumberUint
}

// MatchingAnyEvent returns the empty Filter.
func MatchingAnyEvent() Filter {
	return Filter{}
}

// MatchingTypes returns a Filter for the given event types. Empty and duplicate types are dropped.
func MatchingTypes(eventTypes ...string) Filter {
	types := slices.DeleteFunc(slices.Clone(eventTypes), func(t string) bool { return t == "" })
	slices.Sort(types)

	return Filter{eventTypes: slices.Compact(types)}
}

// WithAnyPredicate returns a copy of f that requires at least one of the predicates to match.
// Predicates with an empty key or value are dropped.
func (f Filter) WithAnyPredicate(predicates ...Predicate) Filter {
	f.predicates = sanitizePredicates(predicates)

	return f
}

// WithSequenceNumberHigherThan returns a copy of f that skips events up to and including seq.
// Snapshot-based queries use it to read only what happened since the snapshot.
func (f Filter) WithSequenceNumberHigherThan(seq MaxSequenceNumberUint) Filter {
	f.afterSequence = seq

	return f
}

// Hash identifies what the filter selects, ignoring the sequence bound, so a snapshot
// stays addressable while it is brought up to date.
func (f Filter) Hash() string {
	var b strings.Builder

	b.WriteString("types:")
	b.WriteString(strings.Join(f.eventTypes, ","))
	b.WriteString("|predicates:")
	for _, p := range f.predicates {
		b.WriteString(strconv.Quote(p.key))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(p.val))
		b.WriteByte(';')
	}

	return strconv.FormatUint(xxhash.Sum64String(b.String()), 16)
}

// Matches reports whether the event is selected by the filter.
func (f Filter) Matches(event StorableEvent) bool {
	if f.afterSequence > 0 && event.SequenceNumber <= f.afterSequence {
		return false
	}

	if len(f.eventTypes) > 0 && !slices.Contains(f.eventTypes, event.EventType) {
		return false
	}

	if len(f.predicates) == 0 {
		return true
	}

	return slices.ContainsFunc(f.predicates, func(p Predicate) bool {
		field := jsoniter.Get(event.PayloadJSON, p.key)
		return field.LastError() == nil && field.ToString() == p.val
	})
}

func sanitizePredicates(predicates []Predicate) []Predicate {
	ps := slices.DeleteFunc(slices.Clone(predicates), func(p Predicate) bool {
		return p.key == "" || p.val == ""
	})
	slices.SortFunc(ps, func(a, b Predicate) int {
		if c := strings.Compare(a.key, b.key); c != 0 {
			return c
		}
		return strings.Compare(a.val, b.val)
	})

	return slices.Compact(ps)
}
