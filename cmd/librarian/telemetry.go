package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/booklending/internal/config"
	"github.com/AntonStoeckl/booklending/journal/oteladapters"
	"github.com/AntonStoeckl/booklending/journal/promadapters"
	"github.com/AntonStoeckl/booklending/shell"
)

const instrumentationName = "github.com/AntonStoeckl/booklending"

type statLine struct {
	Name   string
	Labels string
	Value  float64
}

// telemetry bundles the collectors handed to the Library and a way to read them back for "stats".
type telemetry struct {
	metrics  shell.MetricsCollector
	tracing  shell.TracingCollector
	stats    func(ctx context.Context) ([]statLine, error)
	shutdown func(ctx context.Context) error
}

func setupTelemetry(backend string) (telemetry, error) {
	switch backend {
	case config.MetricsPrometheus:
		return prometheusTelemetry(), nil
	case config.MetricsOTel:
		return otelTelemetry(), nil
	case config.MetricsNone:
		return telemetry{
			stats:    func(context.Context) ([]statLine, error) { return nil, nil },
			shutdown: func(context.Context) error { return nil },
		}, nil
	default:
		return telemetry{}, fmt.Errorf("unknown metrics backend %q", backend)
	}
}

func prometheusTelemetry() telemetry {
	registry := prometheus.NewRegistry()

	return telemetry{
		metrics: promadapters.NewMetricsCollector(registry, promadapters.WithNamespace("librarian")),
		stats: func(context.Context) ([]statLine, error) {
			families, err := registry.Gather()
			if err != nil {
				return nil, err
			}

			var lines []statLine
			for _, mf := range families {
				for _, m := range mf.GetMetric() {
					pairs := make([]string, 0, len(m.GetLabel()))
					for _, l := range m.GetLabel() {
						pairs = append(pairs, l.GetName()+"="+l.GetValue())
					}

					line := statLine{Name: mf.GetName(), Labels: strings.Join(pairs, ",")}
					switch {
					case m.GetCounter() != nil:
						line.Value = m.GetCounter().GetValue()
					case m.GetHistogram() != nil:
						line.Value = float64(m.GetHistogram().GetSampleCount())
					case m.GetGauge() != nil:
						line.Value = m.GetGauge().GetValue()
					}
					lines = append(lines, line)
				}
			}

			return lines, nil
		},
		shutdown: func(context.Context) error { return nil },
	}
}

func otelTelemetry() telemetry {
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	tracerProvider := sdktrace.NewTracerProvider()

	return telemetry{
		metrics: oteladapters.NewMetricsCollector(meterProvider.Meter(instrumentationName)),
		tracing: oteladapters.NewTracingCollector(tracerProvider.Tracer(instrumentationName)),
		stats: func(ctx context.Context) ([]statLine, error) {
			var rm metricdata.ResourceMetrics
			if err := reader.Collect(ctx, &rm); err != nil {
				return nil, err
			}

			return statLinesFrom(rm), nil
		},
		shutdown: func(ctx context.Context) error {
			return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
		},
	}
}

func statLinesFrom(rm metricdata.ResourceMetrics) []statLine {
	var lines []statLine

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, statLine{Name: m.Name, Labels: encode(dp.Attributes), Value: float64(dp.Value)})
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, statLine{Name: m.Name, Labels: encode(dp.Attributes), Value: float64(dp.Count)})
				}
			case metricdata.Gauge[float64]:
				for _, dp := range data.DataPoints {
					lines = append(lines, statLine{Name: m.Name, Labels: encode(dp.Attributes), Value: dp.Value})
				}
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b statLine) int { return strings.Compare(a.Name, b.Name) })

	return lines
}

func encode(set attribute.Set) string {
	return set.Encoded(attribute.DefaultEncoder())
}
