package spies

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"
)

// MetricRecord is one recorded metrics call. Value is the duration in seconds for
// duration records and 1 for counter increments.
type MetricRecord struct {
	Kind   string // "duration", "counter" or "value"
	Metric string
	Value  float64
	Labels map[string]string
}

// MetricsCollectorSpy implements journal.ContextualMetricsCollector.
type MetricsCollectorSpy struct {
	mu      sync.Mutex
	records []MetricRecord
}

// NewMetricsCollectorSpy creates an empty MetricsCollectorSpy.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) record(kind, metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, MetricRecord{
		Kind:   kind,
		Metric: metric,
		Value:  value,
		Labels: maps.Clone(labels),
	})
}

// RecordDuration records a duration observation.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.record("duration", metric, duration.Seconds(), labels)
}

// IncrementCounter records a counter increment.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.record("counter", metric, 1, labels)
}

// RecordValue records a gauge value.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.record("value", metric, value, labels)
}

// RecordDurationContext records a duration observation.
func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

// IncrementCounterContext records a counter increment.
func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

// RecordValueContext records a gauge value.
func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

// Records returns all records in call order.
func (s *MetricsCollectorSpy) Records() []MetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.records)
}

// RecordsFor returns the records of one metric in call order.
func (s *MetricsCollectorSpy) RecordsFor(metric string) []MetricRecord {
	return slices.DeleteFunc(s.Records(), func(r MetricRecord) bool { return r.Metric != metric })
}

// HasMetric reports whether the metric was recorded at least once.
func (s *MetricsCollectorSpy) HasMetric(metric string) bool {
	return len(s.RecordsFor(metric)) > 0
}
