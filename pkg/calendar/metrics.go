package calendar

import "github.com/Sumatoshi-tech/gitrewind/pkg/metrics"

// RhythmMetric computes the calendar statistics of a year.
type RhythmMetric struct {
	metrics.MetricMeta
}

// NewRhythmMetric creates the rhythm metric.
func NewRhythmMetric() *RhythmMetric {
	return &RhythmMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        "rhythm",
			MetricDisplayName: "Rhythm",
			MetricDescription: "Active days, longest and current streak, monthly histogram, busiest month and day, " +
				"and weekday distribution of the contribution calendar. Entries with malformed dates are ignored.",
			MetricType: metrics.TypeAggregate,
		},
	}
}

// Compute normalizes the raw calendar entries.
func (m *RhythmMetric) Compute(input []RawDay) Rhythm {
	return Normalize(input)
}
