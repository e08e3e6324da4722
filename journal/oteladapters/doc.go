// Package oteladapters implements the journal observability interfaces on top of OpenTelemetry:
// a TracingCollector over a trace.Tracer, a MetricsCollector over a metric.Meter and a
// ContextualLogger over the otelslog bridge.
//
// The adapters are used by the journal engine and by the observable command wrappers alike.
package oteladapters
