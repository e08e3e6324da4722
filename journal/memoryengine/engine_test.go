package memoryengine_test

import (
	"bufio"
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/booklending/journal"
	"github.com/AntonStoeckl/booklending/journal/memoryengine"
	"github.com/AntonStoeckl/booklending/testutil/spies"
)

func storable(t *testing.T, eventType string, payload string) journal.StorableEvent {
	t.Helper()

	event, err := journal.BuildStorableEventWithEmptyMetadata(eventType, time.Now(), []byte(payload))
	require.NoError(t, err)

	return event
}

func Test_Append_AssignsSequenceNumbers(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()

	// act
	err := engine.Append(ctx, journal.MatchingAnyEvent(), 0,
		storable(t, "A", `{"BookID":"1"}`),
		storable(t, "B", `{"BookID":"2"}`),
	)

	// assert
	require.NoError(t, err)
	events, maxSeq, err := engine.Query(ctx, journal.MatchingAnyEvent())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, uint(1), events[0].SequenceNumber)
	assert.Equal(t, uint(2), events[1].SequenceNumber)
	assert.Equal(t, uint(2), maxSeq)
}

func Test_Append_ConcurrencyConflict_WhenMatchingEventWasAppended(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	filter := journal.MatchingAnyEvent().WithAnyPredicate(journal.P("BookID", "1"))
	_, maxSeq, err := engine.Query(ctx, filter)
	require.NoError(t, err)
	require.NoError(t, engine.Append(ctx, filter, maxSeq, storable(t, "A", `{"BookID":"1"}`)))

	// act
	err = engine.Append(ctx, filter, maxSeq, storable(t, "B", `{"BookID":"1"}`))

	// assert
	assert.ErrorIs(t, err, journal.ErrConcurrencyConflict)
	assert.Equal(t, 1, engine.Len())
}

func Test_Append_Success_WhenOnlyUnrelatedEventsWereAppended(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	filter := journal.MatchingAnyEvent().WithAnyPredicate(journal.P("BookID", "1"))
	_, maxSeq, err := engine.Query(ctx, filter)
	require.NoError(t, err)
	require.NoError(t, engine.Append(ctx, journal.MatchingAnyEvent(), 0, storable(t, "A", `{"BookID":"2"}`)))

	// act
	err = engine.Append(ctx, filter, maxSeq, storable(t, "B", `{"BookID":"1"}`))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, engine.Len())
}

func Test_Append_Error_WhenNoEvents(t *testing.T) {
	engine := memoryengine.NewEngine()

	err := engine.Append(context.Background(), journal.MatchingAnyEvent(), 0)

	assert.ErrorIs(t, err, journal.ErrNoEventsToAppend)
}

func Test_Query_Error_WhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine := memoryengine.NewEngine()

	_, _, err := engine.Query(ctx, journal.MatchingAnyEvent())

	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Append_OnlyOneConcurrentWriterWins(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	filter := journal.MatchingAnyEvent()
	_, maxSeq, err := engine.Query(ctx, filter)
	require.NoError(t, err)

	event := storable(t, "A", `{}`)
	var wins atomic.Int32
	var wg sync.WaitGroup

	// act
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if engine.Append(ctx, filter, maxSeq, event) == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	// assert
	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, 1, engine.Len())
}

func Test_Engine_Observability(t *testing.T) {
	// arrange
	ctx := context.Background()
	metrics := spies.NewMetricsCollectorSpy()
	tracing := spies.NewTracingCollectorSpy()
	logger := spies.NewContextualLoggerSpy()
	engine := memoryengine.NewEngine(
		memoryengine.WithMetrics(metrics),
		memoryengine.WithTracing(tracing),
		memoryengine.WithContextualLogger(logger),
	)

	// act
	_, maxSeq, _ := engine.Query(ctx, journal.MatchingAnyEvent())
	_ = engine.Append(ctx, journal.MatchingAnyEvent(), maxSeq, storable(t, "A", `{}`))
	conflictErr := engine.Append(ctx, journal.MatchingAnyEvent(), maxSeq, storable(t, "A", `{}`))

	// assert
	require.ErrorIs(t, conflictErr, journal.ErrConcurrencyConflict)
	assert.Len(t, metrics.RecordsFor("journal_query_duration_seconds"), 1)
	assert.Len(t, metrics.RecordsFor("journal_append_duration_seconds"), 2)
	assert.Len(t, metrics.RecordsFor("journal_concurrency_conflicts_total"), 1)

	appendSpans := tracing.SpansNamed("journal.append")
	require.Len(t, appendSpans, 2)
	assert.Equal(t, "success", appendSpans[0].Status)
	assert.Equal(t, "error", appendSpans[1].Status)
	assert.Equal(t, "concurrency_conflict", appendSpans[1].EndAttributes["error.type"])

	assert.True(t, logger.HasMessage("journal concurrency conflict detected"))
	assert.Len(t, logger.RecordsAt("debug"), 2)
}

func Test_Export_WritesOneJSONLinePerEvent(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	require.NoError(t, engine.Append(ctx, journal.MatchingAnyEvent(), 0,
		storable(t, "A", `{"Title":"Python Basics"}`),
		storable(t, "B", `{"Title":"DBMS Concepts"}`),
	))
	var buf bytes.Buffer

	// act
	err := engine.Export(ctx, &buf)

	// assert
	require.NoError(t, err)
	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "A", jsoniter.Get([]byte(lines[0]), "event_type").ToString())
	assert.Equal(t, 2, jsoniter.Get([]byte(lines[1]), "sequence_number").ToInt())
	assert.Equal(t, "DBMS Concepts", jsoniter.Get([]byte(lines[1]), "payload", "Title").ToString())
}

func Test_Snapshot_SaveAndLoad(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	filter := journal.MatchingTypes("Returned")
	snapshot, err := journal.BuildSnapshot("Finished", filter.Hash(), 3, []byte(`{"Count":1}`), time.Now())
	require.NoError(t, err)

	// act
	require.NoError(t, engine.SaveSnapshot(ctx, snapshot))
	loaded, err := engine.LoadSnapshot(ctx, "Finished", filter.WithSequenceNumberHigherThan(3))

	// assert
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, uint(3), loaded.SequenceNumber)
	assert.JSONEq(t, `{"Count":1}`, string(loaded.Data))
}

func Test_Snapshot_Miss_WhenNothingStored(t *testing.T) {
	// arrange
	engine := memoryengine.NewEngine()

	// act
	loaded, err := engine.LoadSnapshot(context.Background(), "Finished", journal.MatchingAnyEvent())

	// assert
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func Test_Snapshot_KeepsNewest_WhenOlderSavedLater(t *testing.T) {
	// arrange
	ctx := context.Background()
	engine := memoryengine.NewEngine()
	hash := journal.MatchingAnyEvent().Hash()
	newer, err := journal.BuildSnapshot("P", hash, 9, []byte(`{"v":9}`), time.Now())
	require.NoError(t, err)
	older, err := journal.BuildSnapshot("P", hash, 4, []byte(`{"v":4}`), time.Now())
	require.NoError(t, err)

	// act
	require.NoError(t, engine.SaveSnapshot(ctx, newer))
	require.NoError(t, engine.SaveSnapshot(ctx, older))

	// assert
	loaded, err := engine.LoadSnapshot(ctx, "P", journal.MatchingAnyEvent())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, uint(9), loaded.SequenceNumber)
}

func Test_SaveSnapshot_Error_WhenInvalid(t *testing.T) {
	err := memoryengine.NewEngine().SaveSnapshot(context.Background(), journal.Snapshot{FilterHash: "h", Data: []byte(`{}`)})

	assert.ErrorIs(t, err, journal.ErrEmptyProjectionType)
}
