package finishedrentals

import (
	"context"

	"github.com/AntonStoeckl/booklending/shell"
)

// QueryHandler runs the Query -> Unmarshal -> Project workflow against the journal.
type QueryHandler struct {
	journal shell.QueriesJournal
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(journal shell.QueriesJournal) QueryHandler {
	return QueryHandler{journal: journal}
}

// Handle executes the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (FinishedRentals, error) {
	storableEvents, maxSeq, err := h.journal.Query(ctx, BuildEventFilter(query))
	if err != nil {
		return FinishedRentals{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return FinishedRentals{}, err
	}

	return Project(history, query, maxSeq), nil
}
