package spies

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/AntonStoeckl/booklending/journal"
)

// SpanRecord is one span started through the TracingCollectorSpy.
type SpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	Finished        bool
}

// SpySpanContext is the journal.SpanContext handed out by the TracingCollectorSpy.
type SpySpanContext struct {
	spy   *TracingCollectorSpy
	index int
}

// SetStatus sets the status of the span.
func (c *SpySpanContext) SetStatus(status string) {
	c.spy.mu.Lock()
	defer c.spy.mu.Unlock()

	c.spy.spans[c.index].Status = status
}

// AddAttribute adds an end attribute to the span.
func (c *SpySpanContext) AddAttribute(key, value string) {
	c.spy.mu.Lock()
	defer c.spy.mu.Unlock()

	c.spy.spans[c.index].EndAttributes[key] = value
}

// TracingCollectorSpy implements journal.TracingCollector.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []SpanRecord
}

// NewTracingCollectorSpy creates an empty TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

// StartSpan records a new span.
func (s *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, journal.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spans = append(s.spans, SpanRecord{
		Name:            name,
		StartAttributes: maps.Clone(attrs),
		EndAttributes:   make(map[string]string),
	})

	return ctx, &SpySpanContext{spy: s, index: len(s.spans) - 1}
}

// FinishSpan marks the span finished with the given status and attributes.
func (s *TracingCollectorSpy) FinishSpan(spanCtx journal.SpanContext, status string, attrs map[string]string) {
	c, ok := spanCtx.(*SpySpanContext)
	if !ok || c.spy != s {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	span := &s.spans[c.index]
	span.Status = status
	span.Finished = true
	maps.Copy(span.EndAttributes, attrs)
}

// Spans returns copies of all recorded spans in start order.
func (s *TracingCollectorSpy) Spans() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := slices.Clone(s.spans)
	for i := range spans {
		spans[i].StartAttributes = maps.Clone(spans[i].StartAttributes)
		spans[i].EndAttributes = maps.Clone(spans[i].EndAttributes)
	}

	return spans
}

// SpansNamed returns the recorded spans with the given name.
func (s *TracingCollectorSpy) SpansNamed(name string) []SpanRecord {
	return slices.DeleteFunc(s.Spans(), func(r SpanRecord) bool { return r.Name != name })
}
