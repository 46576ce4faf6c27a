package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricSummariesTotal   = "gitrewind.summaries.total"
	metricComparisonsTotal = "gitrewind.comparisons.total"
	metricInsightsPerRun   = "gitrewind.comparison.insights"
	metricCacheHitsTotal   = "gitrewind.cache.hits.total"
	metricCacheMissesTotal = "gitrewind.cache.misses.total"
	metricCacheEvictions   = "gitrewind.cache.evictions.total"

	attrActivityLevel = "activity_level"
	attrTruncated     = "truncated"
	attrMode          = "mode"
)

// RewindMetrics holds OTel instruments for summary and comparison work.
type RewindMetrics struct {
	summariesTotal   metric.Int64Counter
	comparisonsTotal metric.Int64Counter
	insightsPerRun   metric.Float64Histogram
	cacheHits        metric.Int64Counter
	cacheMisses      metric.Int64Counter
	cacheEvictions   metric.Int64Counter
}

// NewRewindMetrics creates the domain instruments from the given meter.
func NewRewindMetrics(mt metric.Meter) (*RewindMetrics, error) {
	b := newMetricBuilder(mt)

	rm := &RewindMetrics{
		summariesTotal:   b.counter(metricSummariesTotal, "Yearly summaries assembled", "{summary}"),
		comparisonsTotal: b.counter(metricComparisonsTotal, "Year comparisons computed", "{comparison}"),
		insightsPerRun:   b.insights(metricInsightsPerRun, "Narrative insights per comparison"),
		cacheHits:        b.counter(metricCacheHitsTotal, "Summary cache hits", "{hit}"),
		cacheMisses:      b.counter(metricCacheMissesTotal, "Summary cache misses", "{miss}"),
		cacheEvictions:   b.counter(metricCacheEvictions, "Summary cache evictions", "{eviction}"),
	}

	return build(b, rm)
}

// RecordSummary counts an assembled summary. Safe to call on a nil receiver (no-op).
func (rm *RewindMetrics) RecordSummary(ctx context.Context, level string, truncated bool) {
	if rm == nil {
		return
	}

	rm.summariesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrActivityLevel, level),
		attribute.Bool(attrTruncated, truncated),
	))
}

// RecordComparison counts a comparison and its insight count. Safe to call
// on a nil receiver (no-op).
func (rm *RewindMetrics) RecordComparison(ctx context.Context, mode string, insights int) {
	if rm == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String(attrMode, mode))
	rm.comparisonsTotal.Add(ctx, 1, attrs)
	rm.insightsPerRun.Record(ctx, float64(insights), attrs)
}

// RecordCacheLookup counts a cache hit or miss. Safe to call on a nil receiver (no-op).
func (rm *RewindMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	if rm == nil {
		return
	}

	if hit {
		rm.cacheHits.Add(ctx, 1)

		return
	}

	rm.cacheMisses.Add(ctx, 1)
}

// RecordCacheEvictions adds evictions observed since the last call. Safe to
// call on a nil receiver (no-op).
func (rm *RewindMetrics) RecordCacheEvictions(ctx context.Context, n int64) {
	if rm == nil || n <= 0 {
		return
	}

	rm.cacheEvictions.Add(ctx, n)
}
