package shell

import (
	"context"

	"github.com/AntonStoeckl/booklending/core"
	"github.com/AntonStoeckl/booklending/journal"
)

// Command is implemented by every command of the feature slices.
type Command interface {
	CommandType() string
}

// ReportsHandling is implemented by every command result. Results embed HandlerResult.
type ReportsHandling interface {
	Handling() HandlerResult
}

// CoreCommandHandler runs one command: snapshot, decide, commit, retry on conflict.
// It knows nothing about observability; wrap it with observable.CommandWrapper for that.
type CoreCommandHandler[C Command, R ReportsHandling] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// QueriesJournal is what query handlers need from the journal.
type QueriesJournal interface {
	Query(ctx context.Context, filter journal.Filter) (
		journal.StorableEvents,
		journal.MaxSequenceNumberUint,
		error,
	)
}

// Query is implemented by every query of the feature slices.
type Query interface {
	QueryType() string
	SnapshotType() string
}

// QueryResult is implemented by every query result.
type QueryResult interface {
	GetSequenceNumber() uint
}

// QueryHandler runs one query.
type QueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// ProjectionFunc folds history into a result. With a base it continues from that earlier result.
type ProjectionFunc[Q Query, R QueryResult] func(history core.DomainEvents, query Q, maxSequence uint, base ...R) R

// FilterBuilderFunc builds the journal filter a query reads.
type FilterBuilderFunc[Q Query] func(query Q) journal.Filter

// Observability interface aliases, so feature code only imports shell.

type (
	Logger                     = journal.Logger
	ContextualLogger           = journal.ContextualLogger
	MetricsCollector           = journal.MetricsCollector
	ContextualMetricsCollector = journal.ContextualMetricsCollector
	TracingCollector           = journal.TracingCollector
	SpanContext                = journal.SpanContext
)
