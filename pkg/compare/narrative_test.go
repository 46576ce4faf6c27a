package compare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gitrewind/pkg/compare"
)

func intPtr(n int) *int { return &n }

func TestStageFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		elapsed int
		want    compare.Stage
	}{
		{elapsed: 1, want: compare.StageEarly},
		{elapsed: 30, want: compare.StageEarly},
		{elapsed: 31, want: compare.StageTrajectory},
		{elapsed: 90, want: compare.StageTrajectory},
		{elapsed: 91, want: compare.StageHalfYear},
		{elapsed: 180, want: compare.StageHalfYear},
		{elapsed: 181, want: compare.StagePace},
		{elapsed: 270, want: compare.StagePace},
		{elapsed: 271, want: compare.StageProjection},
		{elapsed: 349, want: compare.StageProjection},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, compare.StageFor(tt.elapsed), "elapsed %d", tt.elapsed)
	}
}

func TestNarrate_ContributionChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pct  int
		want string
	}{
		{name: "more", pct: 25, want: "You contributed 25% more than last year."},
		{name: "less", pct: -40, want: "You contributed 40% less than last year. Quality over quantity."},
		{name: "same", pct: 0, want: "You matched last year's contribution count exactly."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			insights := compare.Narrate(compare.Signals{
				Mode:                       compare.ModeFullYear,
				CurrentTotal:               100,
				BaselineTotal:              100,
				ContributionsPercentChange: tt.pct,
			})

			assert.Equal(t, []string{tt.want}, insights)
		})
	}
}

func TestNarrate_SamePeriodStages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		signals compare.Signals
		want    string
	}{
		{
			name:    "early_tiny_baseline_beaten",
			signals: compare.Signals{Elapsed: 12, CurrentTotal: 30, BaselineTotal: 4},
			want:    "You've already beaten the 4 contributions you had in the first 12 days last year.",
		},
		{
			name:    "early_window",
			signals: compare.Signals{Elapsed: 1, CurrentTotal: 1, BaselineTotal: 40},
			want:    "1 day in, you have 1 contribution against 40 over the same days last year.",
		},
		{
			name: "trajectory",
			signals: compare.Signals{
				Elapsed: 60, CurrentTotal: 300, PreviousYearTotal: 1500, ProjectedYearTotal: intPtr(1825),
			},
			want: "You're tracking toward about 1,825 contributions this year, ahead of last year's 1,500.",
		},
		{
			name:    "half_year",
			signals: compare.Signals{Elapsed: 120, CurrentTotal: 450, PreviousYearTotal: 900},
			want:    "You've already reached 50% of last year's total of 900 contributions.",
		},
		{
			name:    "half_year_empty_previous",
			signals: compare.Signals{Elapsed: 120, CurrentTotal: 450},
			want:    "Last year had no contributions, so everything this year is new ground.",
		},
		{
			name:    "pace",
			signals: compare.Signals{Elapsed: 200, CurrentTotal: 500, BaselineTotal: 300},
			want:    "Your daily pace is 2.5 contributions, versus 1.5 over the same days last year.",
		},
		{
			name: "projection",
			signals: compare.Signals{
				Elapsed: 300, CurrentTotal: 900, PreviousYearTotal: 1000, ProjectedYearTotal: intPtr(1095),
			},
			want: "At this pace you'll finish the year with about 1,095 contributions, compared with 1,000 last year.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.signals.Mode = compare.ModeSamePeriod
			insights := compare.Narrate(tt.signals)

			assert.Len(t, insights, 2)
			assert.Equal(t, tt.want, insights[1])
		})
	}
}

func TestNarrate_TimingSuppressedEarlyInYear(t *testing.T) {
	t.Parallel()

	signals := compare.Signals{
		Mode:                compare.ModeSamePeriod,
		Elapsed:             150,
		CurrentTotal:        10,
		BaselineTotal:       10,
		PreviousYearTotal:   10,
		ActiveDaysDelta:     40,
		ConsistencyImproved: true,
		LongestStreakDelta:  -20,
	}

	assert.Len(t, compare.Narrate(signals), 2)

	signals.Elapsed = 181
	insights := compare.Narrate(signals)

	assert.Contains(t, insights, "You were more consistent, coding 40 more days.")
	assert.Contains(t, insights, "Your longest streak was 20 days shorter, but streaks aren't everything.")
}

func TestNarrate_ThresholdsFilterNoise(t *testing.T) {
	t.Parallel()

	insights := compare.Narrate(compare.Signals{
		Mode:                compare.ModeFullYear,
		CurrentTotal:        10,
		BaselineTotal:       10,
		ActiveDaysDelta:     compare.ActiveDaysDeltaThreshold,
		ConsistencyImproved: true,
		LongestStreakDelta:  compare.StreakDeltaThreshold,
		PullRequestsDelta:   compare.PRDeltaThreshold,
	})

	assert.Len(t, insights, 1)
}

func TestNarrate_Languages(t *testing.T) {
	t.Parallel()

	insights := compare.Narrate(compare.Signals{
		Mode:                    compare.ModeFullYear,
		CurrentTotal:            1,
		BaselineTotal:           1,
		NewLanguages:            []string{"Zig"},
		DroppedLanguages:        []string{"Perl", "Tcl"},
		PreviousPrimaryLanguage: "Go",
		CurrentPrimaryLanguage:  "Go",
	})

	assert.Equal(t, []string{
		"You matched last year's contribution count exactly.",
		"Zig entered your stack for the first time.",
		"Languages you set aside this year: Perl and Tcl.",
	}, insights)
}

func TestNarrate_FromNothing(t *testing.T) {
	t.Parallel()

	insights := compare.Narrate(compare.Signals{Mode: compare.ModeSamePeriod, Elapsed: 45, CurrentTotal: 1})

	assert.Equal(t, "You made 1 contribution, up from none in the same period last year.", insights[0])
}

func TestNarrate_BaselineUnavailable(t *testing.T) {
	t.Parallel()

	insights := compare.Narrate(compare.Signals{
		Mode:                compare.ModeSamePeriod,
		Elapsed:             200,
		CurrentTotal:        40,
		PreviousYearTotal:   900,
		BaselineUnavailable: true,
		ActiveDaysDelta:     30,
		ConsistencyImproved: true,
		LongestStreakDelta:  10,
		PullRequestsDelta:   5,
	})

	assert.Equal(t, []string{
		"You have 40 contributions so far. Last year's summary has no daily breakdown, " +
			"so the same period can't be compared.",
		"You merged 5 more PRs than last year.",
	}, insights)
}
