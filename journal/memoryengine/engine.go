package memoryengine

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/booklending/journal"
)

const (
	logMsgQueryCompleted      = "journal query completed"
	logMsgEventsAppended      = "journal events appended"
	logMsgConcurrencyConflict = "journal concurrency conflict detected"
	logMsgOperationFailed     = "journal operation failed"
	logAttrOperation          = "operation"
	logAttrEventCount         = "event_count"
	logAttrMaxSequence        = "max_sequence"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrDurationMS         = "duration_ms"
	logAttrError              = "error"
	operationQuery            = "query"
	operationAppend           = "append"
	operationExport           = "export"
	operationSaveSnapshot     = "save_snapshot"
	operationLoadSnapshot     = "load_snapshot"
	logMsgSnapshotSaved       = "journal snapshot saved"
	logMsgSnapshotLoaded      = "journal snapshot loaded"
	logMsgSnapshotMiss        = "journal snapshot miss"
	logAttrProjectionType     = "projection_type"
	spanNameQuery             = "journal.query"
	spanNameAppend            = "journal.append"
	spanAttrEventCount        = "journal.event_count"
	spanAttrMaxSequence       = "journal.max_sequence"
	spanAttrExpectedSequence  = "journal.expected_sequence"
	spanAttrErrorType         = "error.type"
	metricQueryDuration       = "journal_query_duration_seconds"
	metricAppendDuration      = "journal_append_duration_seconds"
	metricConcurrencyConflict = "journal_concurrency_conflicts_total"
	labelOperation            = "operation"
	labelStatus               = "status"
	statusSuccess             = "success"
	statusError               = "error"
	errorTypeConflict         = "concurrency_conflict"
	errorTypeCanceled         = "context_canceled"
	errorTypeInvalid          = "invalid_input"
)

// Engine is an in-memory, append-only journal.
type Engine struct {
	mu        sync.RWMutex
	events    journal.StorableEvents
	snapshots map[snapshotKey]journal.Snapshot

	logger           journal.Logger
	contextualLogger journal.ContextualLogger
	metricsCollector journal.MetricsCollector
	tracingCollector journal.TracingCollector
}

// NewEngine creates an empty Engine.
func NewEngine(options ...Option) *Engine {
	e := &Engine{snapshots: make(map[snapshotKey]journal.Snapshot)}

	for _, option := range options {
		option(e)
	}

	return e
}

// Query returns the matching events in sequence order and the highest sequence number among them,
// which is 0 if nothing matches.
func (e *Engine) Query(ctx context.Context, filter journal.Filter) (
	journal.StorableEvents,
	journal.MaxSequenceNumberUint,
	error,
) {

	ctx, span := e.startSpan(ctx, spanNameQuery, nil)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		e.fail(ctx, span, operationQuery, errorTypeCanceled, err, time.Since(start))
		return nil, 0, err
	}

	e.mu.RLock()
	matching, maxSeq := e.matching(filter)
	e.mu.RUnlock()

	duration := time.Since(start)
	e.recordDuration(ctx, metricQueryDuration, duration, operationQuery, statusSuccess)
	e.logDebug(ctx, logMsgQueryCompleted,
		logAttrEventCount, len(matching),
		logAttrMaxSequence, maxSeq,
		logAttrDurationMS, toMilliseconds(duration),
	)
	e.finishSpan(span, statusSuccess, map[string]string{
		spanAttrEventCount:  strconv.Itoa(len(matching)),
		spanAttrMaxSequence: strconv.FormatUint(uint64(maxSeq), 10),
	})

	return matching, maxSeq, nil
}

// Append adds events atomically if the highest sequence number among the events matching filter
// still equals expectedMaxSeq. Otherwise, it returns journal.ErrConcurrencyConflict and appends nothing.
// Sequence numbers are assigned in order, starting at 1.
func (e *Engine) Append(
	ctx context.Context,
	filter journal.Filter,
	expectedMaxSeq journal.MaxSequenceNumberUint,
	events ...journal.StorableEvent,
) error {

	ctx, span := e.startSpan(ctx, spanNameAppend, map[string]string{
		spanAttrEventCount:       strconv.Itoa(len(events)),
		spanAttrExpectedSequence: strconv.FormatUint(uint64(expectedMaxSeq), 10),
	})
	start := time.Now()

	if len(events) == 0 {
		e.fail(ctx, span, operationAppend, errorTypeInvalid, journal.ErrNoEventsToAppend, time.Since(start))
		return journal.ErrNoEventsToAppend
	}

	if err := ctx.Err(); err != nil {
		e.fail(ctx, span, operationAppend, errorTypeCanceled, err, time.Since(start))
		return err
	}

	e.mu.Lock()
	_, currentMaxSeq := e.matching(filter)
	if currentMaxSeq != expectedMaxSeq {
		e.mu.Unlock()
		e.conflict(ctx, span, expectedMaxSeq, currentMaxSeq, time.Since(start))
		return journal.ErrConcurrencyConflict
	}

	next := uint(len(e.events))
	for _, event := range events {
		next++
		event.SequenceNumber = next
		e.events = append(e.events, event)
	}
	e.mu.Unlock()

	duration := time.Since(start)
	e.recordDuration(ctx, metricAppendDuration, duration, operationAppend, statusSuccess)
	e.logDebug(ctx, logMsgEventsAppended,
		logAttrEventCount, len(events),
		logAttrMaxSequence, next,
		logAttrDurationMS, toMilliseconds(duration),
	)
	e.finishSpan(span, statusSuccess, map[string]string{
		spanAttrMaxSequence: strconv.FormatUint(uint64(next), 10),
	})

	return nil
}

// Len returns the number of events in the journal.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.events)
}

type snapshotKey struct {
	projectionType string
	filterHash     string
}

// SaveSnapshot stores the snapshot, replacing any earlier one for the same projection type and filter.
// A snapshot older than the stored one is ignored.
func (e *Engine) SaveSnapshot(ctx context.Context, snapshot journal.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := snapshot.Validate(); err != nil {
		e.logError(ctx, logMsgOperationFailed, err, logAttrOperation, operationSaveSnapshot)
		return err
	}

	key := snapshotKey{projectionType: snapshot.ProjectionType, filterHash: snapshot.FilterHash}

	e.mu.Lock()
	if stored, ok := e.snapshots[key]; !ok || stored.SequenceNumber <= snapshot.SequenceNumber {
		snapshot.Data = slices.Clone(snapshot.Data)
		e.snapshots[key] = snapshot
	}
	e.mu.Unlock()

	e.logDebug(ctx, logMsgSnapshotSaved,
		logAttrProjectionType, snapshot.ProjectionType,
		logAttrMaxSequence, snapshot.SequenceNumber,
	)

	return nil
}

// LoadSnapshot returns the snapshot stored for the projection type and filter, or nil if there is none.
func (e *Engine) LoadSnapshot(
	ctx context.Context,
	projectionType string,
	filter journal.Filter,
) (*journal.Snapshot, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.mu.RLock()
	snapshot, ok := e.snapshots[snapshotKey{projectionType: projectionType, filterHash: filter.Hash()}]
	e.mu.RUnlock()

	if !ok {
		e.logDebug(ctx, logMsgSnapshotMiss, logAttrProjectionType, projectionType)
		return nil, nil //nolint:nilnil
	}

	e.logDebug(ctx, logMsgSnapshotLoaded,
		logAttrProjectionType, projectionType,
		logAttrMaxSequence, snapshot.SequenceNumber,
		logAttrOperation, operationLoadSnapshot,
	)

	snapshot.Data = slices.Clone(snapshot.Data)

	return &snapshot, nil
}

type exportLine struct {
	SequenceNumber uint                `json:"sequence_number"`
	EventType      string              `json:"event_type"`
	OccurredAt     time.Time           `json:"occurred_at"`
	Payload        jsoniter.RawMessage `json:"payload"`
	Metadata       jsoniter.RawMessage `json:"metadata"`
}

// Export writes every event as one JSON object per line, in sequence order.
func (e *Engine) Export(ctx context.Context, w io.Writer) error {
	e.mu.RLock()
	events := slices.Clone(e.events)
	e.mu.RUnlock()

	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(w)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			return err
		}

		stream.WriteVal(exportLine{
			SequenceNumber: event.SequenceNumber,
			EventType:      event.EventType,
			OccurredAt:     event.OccurredAt,
			Payload:        event.PayloadJSON,
			Metadata:       event.MetadataJSON,
		})
		stream.WriteRaw("\n")

		if err := stream.Flush(); err != nil {
			e.logError(ctx, logMsgOperationFailed, err, logAttrOperation, operationExport)
			return fmt.Errorf("export journal: %w", err)
		}
	}

	return stream.Error
}

// matching must be called with the lock held.
func (e *Engine) matching(filter journal.Filter) (journal.StorableEvents, journal.MaxSequenceNumberUint) {
	var (
		matching journal.StorableEvents
		maxSeq   journal.MaxSequenceNumberUint
	)

	for _, event := range e.events {
		if filter.Matches(event) {
			matching = append(matching, event)
			maxSeq = event.SequenceNumber
		}
	}

	return matching, maxSeq
}
