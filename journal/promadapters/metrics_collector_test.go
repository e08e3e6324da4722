package promadapters_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/booklending/journal/promadapters"
)

func Test_MetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := promadapters.NewMetricsCollector(registry)
	labels := map[string]string{"command_type": "RentBooks", "status": "success"}

	// act
	collector.IncrementCounter("commandhandler_handle_calls_total", labels)
	collector.IncrementCounter("commandhandler_handle_calls_total", labels)

	// assert
	count, err := testutil.GatherAndCount(registry, "commandhandler_handle_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.InDelta(t, 2.0, families[0].GetMetric()[0].GetCounter().GetValue(), 0.0001)
}

func Test_MetricsCollector_RecordDuration(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := promadapters.NewMetricsCollector(registry, promadapters.WithNamespace("library"))

	collector.RecordDuration("journal_append_duration_seconds", 250*time.Millisecond,
		map[string]string{"operation": "append", "status": "success"})

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "library_journal_append_duration_seconds", families[0].GetName())

	histogram := families[0].GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(1), histogram.GetSampleCount())
	assert.InDelta(t, 0.25, histogram.GetSampleSum(), 0.0001)
}

func Test_MetricsCollector_RecordValue(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := promadapters.NewMetricsCollector(registry)

	collector.RecordValue("library_books_rented", 4, map[string]string{})
	collector.RecordValue("library_books_rented", 3, map[string]string{})

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.InDelta(t, 3.0, families[0].GetMetric()[0].GetGauge().GetValue(), 0.0001)
}

func Test_MetricsCollector_DropsObservationsWithOtherLabelNames(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := promadapters.NewMetricsCollector(registry)

	collector.IncrementCounter("journal_concurrency_conflicts_total", map[string]string{"operation": "append"})

	assert.NotPanics(t, func() {
		collector.IncrementCounter("journal_concurrency_conflicts_total", map[string]string{"other": "x"})
	})

	families, err := registry.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.InDelta(t, 1.0, families[0].GetMetric()[0].GetCounter().GetValue(), 0.0001)
}
