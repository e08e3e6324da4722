package booksrentedout

import (
	"context"

	"github.com/AntonStoeckl/booklending/core"
)

// StateReader defines what the QueryHandler needs from the library.
type StateReader interface {
	CurrentState(ctx context.Context) (core.State, uint, error)
}

// QueryHandler reads a snapshot and projects it.
type QueryHandler struct {
	reader StateReader
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(reader StateReader) QueryHandler {
	return QueryHandler{reader: reader}
}

// Handle executes the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BooksRentedOut, error) {
	state, version, err := h.reader.CurrentState(ctx)
	if err != nil {
		return BooksRentedOut{}, err
	}

	return Project(state, query, version), nil
}
