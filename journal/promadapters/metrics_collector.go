package promadapters

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/booklending/journal"
)

// MetricsCollector implements journal.ContextualMetricsCollector:
//   - RecordDuration: HistogramVec with the default buckets, in seconds
//   - IncrementCounter: CounterVec
//   - RecordValue: GaugeVec
type MetricsCollector struct {
	registerer prometheus.Registerer
	namespace  string

	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// Option configures a MetricsCollector.
type Option func(*MetricsCollector)

// WithNamespace prefixes every metric name with namespace and an underscore.
func WithNamespace(namespace string) Option {
	return func(m *MetricsCollector) {
		m.namespace = namespace
	}
}

// NewMetricsCollector creates a MetricsCollector that registers its vectors with registerer.
func NewMetricsCollector(registerer prometheus.Registerer, options ...Option) *MetricsCollector {
	m := &MetricsCollector{
		registerer: registerer,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// RecordDuration observes duration in seconds.
func (m *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	vec := m.histogram(metric, labels)
	if vec == nil {
		return
	}

	if observer, err := vec.GetMetricWith(labels); err == nil {
		observer.Observe(duration.Seconds())
	}
}

// IncrementCounter adds one to the counter.
func (m *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	vec := m.counter(metric, labels)
	if vec == nil {
		return
	}

	if counter, err := vec.GetMetricWith(labels); err == nil {
		counter.Inc()
	}
}

// RecordValue sets the gauge.
func (m *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	vec := m.gauge(metric, labels)
	if vec == nil {
		return
	}

	if gauge, err := vec.GetMetricWith(labels); err == nil {
		gauge.Set(value)
	}
}

// RecordDurationContext is RecordDuration; Prometheus has no use for the context.
func (m *MetricsCollector) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	m.RecordDuration(metric, duration, labels)
}

// IncrementCounterContext is IncrementCounter.
func (m *MetricsCollector) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	m.IncrementCounter(metric, labels)
}

// RecordValueContext is RecordValue.
func (m *MetricsCollector) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	m.RecordValue(metric, value, labels)
}

func (m *MetricsCollector) histogram(name string, labels map[string]string) *prometheus.HistogramVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, ok := m.histograms[name]; ok {
		return vec
	}

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      "Duration of " + name + " in seconds",
		Buckets:   prometheus.DefBuckets,
	}, labelNames(labels))

	if !m.register(vec) {
		return nil
	}
	m.histograms[name] = vec

	return vec
}

func (m *MetricsCollector) counter(name string, labels map[string]string) *prometheus.CounterVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, ok := m.counters[name]; ok {
		return vec
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      "Total count of " + name,
	}, labelNames(labels))

	if !m.register(vec) {
		return nil
	}
	m.counters[name] = vec

	return vec
}

func (m *MetricsCollector) gauge(name string, labels map[string]string) *prometheus.GaugeVec {
	m.mu.Lock()
	defer m.mu.Unlock()

	if vec, ok := m.gauges[name]; ok {
		return vec
	}

	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      "Current value of " + name,
	}, labelNames(labels))

	if !m.register(vec) {
		return nil
	}
	m.gauges[name] = vec

	return vec
}

// register returns false if the collector could not be registered, e.g. because of a
// name clash with another metric type.
func (m *MetricsCollector) register(c prometheus.Collector) bool {
	if m.registerer == nil {
		return true
	}

	return m.registerer.Register(c) == nil
}

func labelNames(labels map[string]string) []string {
	return slices.Sorted(maps.Keys(labels))
}

var _ journal.ContextualMetricsCollector = (*MetricsCollector)(nil)
