package observability

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// latencyBuckets covers 1ms to 10s. Summaries are pure in-memory
// computations, so anything slower is an outlier worth seeing.
var latencyBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10}

// insightBuckets covers the narrative lengths a comparison can produce.
var insightBuckets = []float64{1, 2, 3, 4, 5, 6, 8, 10}

// metricBuilder accumulates OTel instrument creation errors so that a set of
// instruments is built with a single error check.
type metricBuilder struct {
	meter metric.Meter
	err   error
}

// newMetricBuilder creates a builder for the given meter.
func newMetricBuilder(mt metric.Meter) *metricBuilder {
	return &metricBuilder{meter: mt}
}

// counter creates an Int64Counter instrument.
func (b *metricBuilder) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.setErr(name, err)

	return c
}

// latency creates a seconds histogram on the request latency buckets.
func (b *metricBuilder) latency(name, desc string) metric.Float64Histogram {
	return b.histogram(name, desc, "s", latencyBuckets)
}

// insights creates a histogram of narrative lines per comparison.
func (b *metricBuilder) insights(name, desc string) metric.Float64Histogram {
	return b.histogram(name, desc, "{insight}", insightBuckets)
}

// histogram creates a Float64Histogram instrument with explicit bucket boundaries.
func (b *metricBuilder) histogram(name, desc, unit string, bounds []float64) metric.Float64Histogram {
	h, err := b.meter.Float64Histogram(name,
		metric.WithDescription(desc),
		metric.WithUnit(unit),
		metric.WithExplicitBucketBoundaries(bounds...),
	)
	b.setErr(name, err)

	return h
}

// upDownCounter creates an Int64UpDownCounter instrument.
func (b *metricBuilder) upDownCounter(name, desc, unit string) metric.Int64UpDownCounter {
	c, err := b.meter.Int64UpDownCounter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	b.setErr(name, err)

	return c
}

// setErr records the first instrument creation error.
func (b *metricBuilder) setErr(name string, err error) {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", name, err)
	}
}

// build returns the assembled instrument set, or the first creation error.
func build[T any](b *metricBuilder, set *T) (*T, error) {
	if b.err != nil {
		return nil, b.err
	}

	return set, nil
}
