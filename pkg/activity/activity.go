// Package activity classifies how much happened in a year so that reports
// never celebrate an empty calendar.
package activity

import "github.com/Sumatoshi-tech/gitrewind/pkg/metrics"

// Level is the activity classification of a year.
type Level string

// Activity levels.
const (
	LevelZero    Level = "zero"
	LevelSparse  Level = "sparse"
	LevelTypical Level = "typical"
	LevelHigh    Level = "high"
)

// Classification thresholds. Sparse requires being below both sparse bounds,
// high requires reaching either high bound.
const (
	SparseMaxContributions = 10
	SparseMaxActiveDays    = 5
	HighMinContributions   = 500
	HighMinActiveDays      = 100
)

// Input is what the classification looks at.
type Input struct {
	TotalContributions int
	ActiveDays         int
}

// Classify returns the activity level for the given totals.
func Classify(totalContributions, activeDays int) Level {
	switch {
	case totalContributions == 0 && activeDays == 0:
		return LevelZero
	case totalContributions < SparseMaxContributions && activeDays < SparseMaxActiveDays:
		return LevelSparse
	case totalContributions >= HighMinContributions || activeDays >= HighMinActiveDays:
		return LevelHigh
	default:
		return LevelTypical
	}
}

// IsLow reports whether only neutral copy fits the level.
func (l Level) IsLow() bool {
	return l == LevelZero || l == LevelSparse
}

// Motivational reports whether encouraging copy fits the level.
func (l Level) Motivational() bool {
	return l == LevelTypical || l == LevelHigh
}

// LevelMetric classifies a year's activity.
type LevelMetric struct {
	metrics.MetricMeta
}

// NewLevelMetric creates the activity level metric.
func NewLevelMetric() *LevelMetric {
	return &LevelMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        "activity_level",
			MetricDisplayName: "Activity Level",
			MetricDescription: "Zero when nothing happened, sparse below 10 contributions and 5 active days, " +
				"high from 500 contributions or 100 active days, typical otherwise. Drives the tone of report copy.",
			MetricType: metrics.TypeClassification,
		},
	}
}

// Compute classifies the input.
func (m *LevelMetric) Compute(input Input) Level {
	return Classify(input.TotalContributions, input.ActiveDays)
}
