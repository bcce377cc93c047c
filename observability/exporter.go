package observability

// https://opentelemetry.io/docs/languages/go/exporters/

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/sdk/metric"

	"github.com/ftcontainers/xstl/lib/infra"
)

type MetricsExporter string

const (
	NoneExporter       MetricsExporter = "none"
	ConsoleExporter    MetricsExporter = "console"
	PrometheusExporter MetricsExporter = "prometheus"
)

// ParseMetricsExporter accepts the exporter name case insensitive. The
// empty name means none.
func ParseMetricsExporter(name string) (MetricsExporter, error) {
	switch exp := MetricsExporter(strings.ToLower(strings.TrimSpace(name))); exp {
	case "", NoneExporter:
		return NoneExporter, nil
	case ConsoleExporter, PrometheusExporter:
		return exp, nil
	default:
	}
	return NoneExporter, infra.NewErrorStack("[observability] unknown metrics exporter " + name)
}

// InitMetricsExporter installs the global meter provider of the exporter
// and returns its shutdown callback. None keeps the otel noop provider.
func InitMetricsExporter(exp MetricsExporter, interval, timeout time.Duration) (func(ctx context.Context) error, error) {
	switch exp {
	case ConsoleExporter:
		return newConsoleMetricsExporter(interval, timeout)
	case PrometheusExporter:
		return newPrometheusMetricsExporter()
	default:
	}
	return func(context.Context) error { return nil }, nil
}

// Serves for test/dev environment.
func newConsoleMetricsExporter(interval, timeout time.Duration, opts ...stdoutmetric.Option) (func(ctx context.Context) error, error) {
	exporter, err := stdoutmetric.New(opts...)
	if err != nil {
		return nil, infra.WrapErrorStack(err)
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	mp := metric.NewMeterProvider(metric.WithReader(metric.NewPeriodicReader(
		exporter,
		metric.WithInterval(interval),
		metric.WithTimeout(timeout),
	)))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

// Serves for the product environment and fetch stats metrics by HTTP.
func newPrometheusMetricsExporter() (func(ctx context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, infra.WrapErrorStack(err)
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}
