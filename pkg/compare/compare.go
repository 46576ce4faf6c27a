// Package compare derives year-over-year deltas and narrative insights from
// two yearly summaries.
//
// A finished previous year is compared in full. When the current year is
// still in progress, the previous year is cut down to the same number of
// elapsed days so that a partial year is never measured against a whole one.
package compare

import (
	"math"
	"slices"

	"github.com/Sumatoshi-tech/gitrewind/pkg/alg/stats"
	"github.com/Sumatoshi-tech/gitrewind/pkg/calendar"
	"github.com/Sumatoshi-tech/gitrewind/pkg/metrics"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

// Mode tags how the two years were lined up.
type Mode string

// Comparison modes.
const (
	ModeFullYear   Mode = "full-year"
	ModeSamePeriod Mode = "same-period"
)

// Default engine options.
const (
	DefaultFullYearThreshold = 350
	DefaultMinProjectionDays = 7
	projectionDaysPerYear    = 365
)

// Options tunes the engine.
type Options struct {
	// FullYearThreshold is the calendar length from which the current year
	// counts as complete.
	FullYearThreshold int
	// MinProjectionDays is the smallest elapsed window that gets a
	// projected annual total.
	MinProjectionDays int
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		FullYearThreshold: DefaultFullYearThreshold,
		MinProjectionDays: DefaultMinProjectionDays,
	}
}

// YearComparison is the derived record of two years.
type YearComparison struct {
	Mode         Mode `json:"mode"          yaml:"mode"`
	CurrentYear  int  `json:"current_year"  yaml:"current_year"`
	PreviousYear int  `json:"previous_year" yaml:"previous_year"`
	ElapsedDays  int  `json:"elapsed_days"  yaml:"elapsed_days"`

	ContributionsDelta         int `json:"contributions_delta"          yaml:"contributions_delta"`
	ContributionsPercentChange int `json:"contributions_percent_change" yaml:"contributions_percent_change"`
	ActiveDaysDelta            int `json:"active_days_delta"            yaml:"active_days_delta"`
	LongestStreakDelta         int `json:"longest_streak_delta"         yaml:"longest_streak_delta"`
	PullRequestsDelta          int `json:"pull_requests_delta"          yaml:"pull_requests_delta"`

	// BaselineContributions is what the previous year is measured by: its
	// full total, or the total of its first ElapsedDays days.
	BaselineContributions int  `json:"baseline_contributions"         yaml:"baseline_contributions"`
	PreviousYearTotal     int  `json:"previous_year_total"            yaml:"previous_year_total"`
	ProjectedYearTotal    *int `json:"projected_year_total,omitempty" yaml:"projected_year_total,omitempty"`
	// BaselineUnavailable is set when the previous year has contributions
	// but no day list to cut a same-period window from. Window deltas are
	// then left at zero.
	BaselineUnavailable bool `json:"baseline_unavailable,omitempty" yaml:"baseline_unavailable,omitempty"`

	NewLanguages        []string `json:"new_languages"        yaml:"new_languages"`
	DroppedLanguages    []string `json:"dropped_languages"    yaml:"dropped_languages"`
	ConsistencyImproved bool     `json:"consistency_improved" yaml:"consistency_improved"`

	NarrativeInsights []string `json:"narrative_insights" yaml:"narrative_insights"`
}

// Engine compares yearly summaries.
type Engine struct {
	opts Options
}

// NewEngine creates an engine. Zero option fields take their defaults.
func NewEngine(opts Options) *Engine {
	if opts.FullYearThreshold <= 0 {
		opts.FullYearThreshold = DefaultFullYearThreshold
	}

	if opts.MinProjectionDays <= 0 {
		opts.MinProjectionDays = DefaultMinProjectionDays
	}

	return &Engine{opts: opts}
}

// Years compares two summaries with the default options.
func Years(current, previous yearstats.YearSummary) YearComparison {
	return NewEngine(DefaultOptions()).Compare(current, previous)
}

// window is the slice of a year the comparison looks at.
type window struct {
	total         int
	activeDays    int
	longestStreak int
	consistency   float64
}

func fullWindow(r calendar.Rhythm, total int) window {
	return window{
		total:         total,
		activeDays:    r.ActiveDays,
		longestStreak: r.LongestStreak,
		consistency:   r.Consistency(),
	}
}

// samePeriod keeps the previous year's days whose day-of-year, counted in
// that year's own calendar, is within the elapsed window.
func samePeriod(r calendar.Rhythm, elapsed int) window {
	days := make([]calendar.Day, 0, min(elapsed, len(r.Days)))

	for _, day := range r.Days {
		if day.Date.YearDay() <= elapsed {
			days = append(days, day)
		}
	}

	cut := calendar.FromDays(days)

	return window{
		total:         cut.Total,
		activeDays:    cut.ActiveDays,
		longestStreak: cut.LongestStreak,
		consistency:   cut.Consistency(),
	}
}

// Compare lines up the two years and derives deltas and insights.
func (e *Engine) Compare(current, previous yearstats.YearSummary) YearComparison {
	mode := ModeFullYear
	if current.Rhythm.TotalDays < e.opts.FullYearThreshold {
		mode = ModeSamePeriod
	}

	elapsed := current.Rhythm.TotalDays
	cur := fullWindow(current.Rhythm, current.TotalContributions)
	prev := fullWindow(previous.Rhythm, previous.TotalContributions)

	unavailable := mode == ModeSamePeriod && len(previous.Rhythm.Days) == 0 && previous.TotalContributions > 0

	switch {
	case unavailable:
		prev = cur
	case mode == ModeSamePeriod:
		prev = samePeriod(previous.Rhythm, elapsed)
	}

	result := YearComparison{
		Mode:                  mode,
		CurrentYear:           current.Year,
		PreviousYear:          previous.Year,
		ElapsedDays:           elapsed,
		ContributionsDelta:    cur.total - prev.total,
		ActiveDaysDelta:       cur.activeDays - prev.activeDays,
		LongestStreakDelta:    cur.longestStreak - prev.longestStreak,
		PullRequestsDelta:     current.Collaboration.PullRequestsMerged - previous.Collaboration.PullRequestsMerged,
		BaselineContributions: prev.total,
		PreviousYearTotal:     previous.TotalContributions,
		BaselineUnavailable:   unavailable,
		NewLanguages:          difference(current.Craft.Names(), previous.Craft.Names()),
		DroppedLanguages:      difference(previous.Craft.Names(), current.Craft.Names()),
		ConsistencyImproved:   cur.consistency > prev.consistency,
	}

	if unavailable {
		result.BaselineContributions = 0
	}

	result.ContributionsPercentChange = stats.Percent(result.ContributionsDelta, prev.total, 0)

	if mode == ModeSamePeriod && elapsed >= e.opts.MinProjectionDays {
		projected := int(math.Round(float64(cur.total) / float64(elapsed) * projectionDaysPerYear))
		result.ProjectedYearTotal = &projected
	}

	result.NarrativeInsights = Narrate(Signals{
		Mode:                       mode,
		Elapsed:                    elapsed,
		BaselineUnavailable:        unavailable,
		CurrentTotal:               cur.total,
		BaselineTotal:              prev.total,
		PreviousYearTotal:          previous.TotalContributions,
		ProjectedYearTotal:         result.ProjectedYearTotal,
		ContributionsPercentChange: result.ContributionsPercentChange,
		ActiveDaysDelta:            result.ActiveDaysDelta,
		ConsistencyImproved:        result.ConsistencyImproved,
		LongestStreakDelta:         result.LongestStreakDelta,
		PullRequestsDelta:          result.PullRequestsDelta,
		NewLanguages:               result.NewLanguages,
		DroppedLanguages:           result.DroppedLanguages,
		PreviousPrimaryLanguage:    previous.Craft.PrimaryLanguage,
		CurrentPrimaryLanguage:     current.Craft.PrimaryLanguage,
	})

	return result
}

// difference returns the names of a missing from b, in a's order.
func difference(a, b []string) []string {
	out := make([]string, 0, len(a))

	for _, name := range a {
		if !slices.Contains(b, name) {
			out = append(out, name)
		}
	}

	return out
}

// Pair is the input of [ComparisonMetric].
type Pair struct {
	Current  yearstats.YearSummary
	Previous yearstats.YearSummary
}

// ComparisonMetric compares two yearly summaries.
type ComparisonMetric struct {
	metrics.MetricMeta

	engine *Engine
}

// NewComparisonMetric creates the comparison metric backed by engine.
func NewComparisonMetric(engine *Engine) *ComparisonMetric {
	return &ComparisonMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        "year_comparison",
			MetricDisplayName: "Year Comparison",
			MetricDescription: "Deltas in contributions, active days, longest streak and merged pull requests, " +
				"language changes and narrative insights. An unfinished current year is compared with the same " +
				"number of days of the previous year and gets a projected annual total after a week of data.",
			MetricType: metrics.TypeComparison,
		},
		engine: engine,
	}
}

// Compute compares the pair.
func (m *ComparisonMetric) Compute(input Pair) YearComparison {
	return m.engine.Compare(input.Current, input.Previous)
}
