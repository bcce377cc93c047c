package observability

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type ContainerOp string

const (
	OpInsert   ContainerOp = "insert"
	OpFind     ContainerOp = "find"
	OpErase    ContainerOp = "erase"
	OpIterate  ContainerOp = "iterate"
	OpValidate ContainerOp = "validate"
)

// ContainerStats records the operation counters and latencies of the
// containers driven by a workload.
type ContainerStats struct {
	ops      metric.Int64Counter
	failures metric.Int64Counter
	latency  metric.Float64Histogram
	size     metric.Int64UpDownCounter
}

// NewContainerStats builds the instruments from mp, or from the global
// meter provider when mp is nil.
func NewContainerStats(mp metric.MeterProvider, name string) *ContainerStats {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName(name))
	return &ContainerStats{
		ops: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xstl.container.ops",
			metric.WithDescription(`The container operations applied.`),
		)),
		failures: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xstl.container.failures",
			metric.WithDescription(`The container operations returned an error.`),
		)),
		latency: lo.Must[metric.Float64Histogram](meter.Float64Histogram(
			"xstl.container.op.latency",
			metric.WithUnit("ms"),
			metric.WithDescription(`The container batch operation latency.`),
			metric.WithExplicitBucketBoundaries(0.01, 0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000),
		)),
		size: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xstl.container.size",
			metric.WithDescription(`The elements held by the containers.`),
		)),
	}
}

func containerAttrs(container string, op ContainerOp) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("container", container),
		attribute.String("op", string(op)),
	)
}

// RecordBatch counts n operations of op taking elapsed in total.
func (s *ContainerStats) RecordBatch(ctx context.Context, container string, op ContainerOp, n int64, elapsed time.Duration) {
	if s == nil {
		return
	}
	attrs := containerAttrs(container, op)
	s.ops.Add(ctx, n, attrs)
	s.latency.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
}

func (s *ContainerStats) RecordFailure(ctx context.Context, container string, op ContainerOp) {
	if s == nil {
		return
	}
	s.failures.Add(ctx, 1, containerAttrs(container, op))
}

// RecordSize moves the size gauge of container by delta.
func (s *ContainerStats) RecordSize(ctx context.Context, container string, delta int64) {
	if s == nil || delta == 0 {
		return
	}
	s.size.Add(ctx, delta, metric.WithAttributes(attribute.String("container", container)))
}
