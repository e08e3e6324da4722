package snapshot

import (
	"context"
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/booklending/journal"
	"github.com/AntonStoeckl/booklending/shell"
)

var (
	// ErrSnapshotLoadFailed is returned when loading the snapshot fails.
	ErrSnapshotLoadFailed = errors.New("snapshot load failed")

	// ErrIncrementalQueryFailed is returned when querying the events after the snapshot fails.
	ErrIncrementalQueryFailed = errors.New("incremental query failed")

	// ErrEventUnmarshalingFailed is returned when the events after the snapshot cannot be unmarshaled.
	ErrEventUnmarshalingFailed = errors.New("event unmarshaling failed")

	// ErrSnapshotDeserializationFailed is returned when the snapshot data does not decode into the result.
	ErrSnapshotDeserializationFailed = errors.New("snapshot deserialization failed")

	// ErrSnapshotSaveFailed is returned when saving the updated snapshot fails.
	ErrSnapshotSaveFailed = errors.New("snapshot save failed")
)

// QueriesJournalAndHandlesSnapshots is what the wrapper needs from the journal.
type QueriesJournalAndHandlesSnapshots interface {
	shell.QueriesJournal
	SaveSnapshot(ctx context.Context, snapshot journal.Snapshot) error
	LoadSnapshot(ctx context.Context, projectionType string, filter journal.Filter) (*journal.Snapshot, error)
}

// QueryWrapper serves a query from its latest snapshot plus the events appended after it.
// On a snapshot miss it delegates to the wrapped handler and stores that result as the first snapshot.
type QueryWrapper[Q shell.Query, R shell.QueryResult] struct {
	coreHandler   shell.QueryHandler[Q, R]
	journal       QueriesJournalAndHandlesSnapshots
	projectFunc   shell.ProjectionFunc[Q, R]
	filterBuilder shell.FilterBuilderFunc[Q]
}

// NewQueryWrapper creates a snapshot-aware wrapper around coreHandler.
func NewQueryWrapper[Q shell.Query, R shell.QueryResult](
	coreHandler shell.QueryHandler[Q, R],
	store QueriesJournalAndHandlesSnapshots,
	projectFunc shell.ProjectionFunc[Q, R],
	filterBuilder shell.FilterBuilderFunc[Q],
) *QueryWrapper[Q, R] {

	return &QueryWrapper[Q, R]{
		coreHandler:   coreHandler,
		journal:       store,
		projectFunc:   projectFunc,
		filterBuilder: filterBuilder,
	}
}

// Handle runs Load -> Incremental Query -> Unmarshal -> Project -> Save.
// Only a snapshot miss falls back to the wrapped handler; every other failure is returned.
func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	var empty R
	baseFilter := w.filterBuilder(query)

	snapshot, err := w.journal.LoadSnapshot(ctx, query.SnapshotType(), baseFilter)
	if err != nil {
		return empty, errors.Join(ErrSnapshotLoadFailed, err)
	}

	if snapshot == nil {
		return w.fallbackAndSaveSnapshot(ctx, query, baseFilter)
	}

	storableEvents, maxSeq, err := w.journal.Query(ctx, baseFilter.WithSequenceNumberHigherThan(snapshot.SequenceNumber))
	if err != nil {
		return empty, errors.Join(ErrIncrementalQueryFailed, err)
	}

	incrementalEvents, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return empty, errors.Join(ErrEventUnmarshalingFailed, err)
	}

	var base R
	if err = jsoniter.ConfigFastest.Unmarshal(snapshot.Data, &base); err != nil {
		return empty, errors.Join(ErrSnapshotDeserializationFailed, err)
	}

	// nothing new matched
	if maxSeq < snapshot.SequenceNumber {
		maxSeq = snapshot.SequenceNumber
	}

	result := w.projectFunc(incrementalEvents, query, maxSeq, base)

	if len(incrementalEvents) > 0 {
		if err = w.saveSnapshot(ctx, query, baseFilter, result); err != nil {
			return empty, err
		}
	}

	return result, nil
}

func (w *QueryWrapper[Q, R]) fallbackAndSaveSnapshot(ctx context.Context, query Q, baseFilter journal.Filter) (R, error) {
	result, err := w.coreHandler.Handle(ctx, query)
	if err != nil {
		return result, err
	}

	if err = w.saveSnapshot(ctx, query, baseFilter, result); err != nil {
		return *new(R), err
	}

	return result, nil
}

func (w *QueryWrapper[Q, R]) saveSnapshot(ctx context.Context, query Q, baseFilter journal.Filter, result R) error {
	data, err := jsoniter.ConfigFastest.Marshal(result)
	if err != nil {
		return errors.Join(ErrSnapshotSaveFailed, err)
	}

	snapshot, err := journal.BuildSnapshot(query.SnapshotType(), baseFilter.Hash(), result.GetSequenceNumber(), data, time.Now())
	if err != nil {
		return errors.Join(ErrSnapshotSaveFailed, err)
	}

	if err = w.journal.SaveSnapshot(ctx, snapshot); err != nil {
		return errors.Join(ErrSnapshotSaveFailed, err)
	}

	return nil
}
