// Package promadapters implements journal.MetricsCollector with the Prometheus client library.
//
// Metric vectors are created and registered on first use. The label names of a metric are
// taken from the first observation; later observations with other label names are dropped.
package promadapters
