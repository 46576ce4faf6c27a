package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitrewind/pkg/calendar"
)

// Test constants to avoid magic strings/numbers.
const (
	testLeapYear   = 2024
	testCommonYear = 2023
)

func raw(pairs ...any) []calendar.RawDay {
	days := make([]calendar.RawDay, 0, len(pairs)/2)

	for i := 0; i+1 < len(pairs); i += 2 {
		days = append(days, calendar.RawDay{Date: pairs[i].(string), Count: pairs[i+1].(int)})
	}

	return days
}

// --- Date Tests ---

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "valid", input: "2024-01-09", valid: true},
		{name: "leap_day", input: "2024-02-29", valid: true},
		{name: "non_leap_feb_29", input: "2023-02-29", valid: false},
		{name: "unpadded", input: "2024-1-9", valid: false},
		{name: "garbage", input: "not-a-date", valid: false},
		{name: "empty", input: "", valid: false},
		{name: "timestamp_suffix", input: "2024-01-09T00:00:00Z", valid: false},
		{name: "month_out_of_range", input: "2024-13-01", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := calendar.ParseDate(tt.input)
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, calendar.ErrInvalidDate)
			}
		})
	}
}

func TestDate_YearDayRespectsLeapYears(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 61, calendar.NewDate(testLeapYear, time.March, 1).YearDay())
	assert.Equal(t, 60, calendar.NewDate(testCommonYear, time.March, 1).YearDay())
	assert.Equal(t, 366, calendar.NewDate(testLeapYear, time.December, 31).YearDay())
	assert.Equal(t, 365, calendar.NewDate(testCommonYear, time.December, 31).YearDay())
}

func TestDate_AddDaysAndDaysSince(t *testing.T) {
	t.Parallel()

	start := calendar.NewDate(testLeapYear, time.February, 28)

	assert.Equal(t, calendar.NewDate(testLeapYear, time.February, 29), start.AddDays(1))
	assert.Equal(t, calendar.NewDate(testLeapYear, time.March, 1), start.AddDays(2))
	assert.Equal(t, 2, start.AddDays(2).DaysSince(start))
	assert.True(t, start.Before(start.AddDays(1)))
}

func TestDate_WeekdayIsUTC(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Monday, calendar.NewDate(testLeapYear, time.January, 1).Weekday())
	assert.Equal(t, time.Tuesday, calendar.NewDate(testLeapYear, time.January, 9).Weekday())
}

func TestDate_JSON(t *testing.T) {
	t.Parallel()

	date := calendar.NewDate(testLeapYear, time.January, 9)

	data, err := json.Marshal(date)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-09"`, string(data))

	var decoded calendar.Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, date, decoded)

	require.Error(t, json.Unmarshal([]byte(`"2023-02-29"`), &decoded))
}

func TestDaysInYear(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 366, calendar.DaysInYear(2024))
	assert.Equal(t, 365, calendar.DaysInYear(2023))
	assert.Equal(t, 365, calendar.DaysInYear(1900))
	assert.Equal(t, 366, calendar.DaysInYear(2000))
}

// --- Normalize Tests ---

func TestNormalize_Empty(t *testing.T) {
	t.Parallel()

	rhythm := calendar.Normalize(nil)

	assert.Zero(t, rhythm.ActiveDays)
	assert.Zero(t, rhythm.TotalDays)
	assert.Zero(t, rhythm.LongestStreak)
	assert.Zero(t, rhythm.CurrentStreak)
	assert.Zero(t, rhythm.WeekendCount)
	assert.Nil(t, rhythm.BusiestDay)
	assert.Empty(t, rhythm.BusiestMonth)
	assert.Empty(t, rhythm.FavoriteWeekdays)
	assert.Len(t, rhythm.MonthlyHistogram, 12)
	assert.Len(t, rhythm.WeekdayDistribution, 7)

	data, err := json.Marshal(rhythm)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"favorite_weekdays":[]`)
	assert.Contains(t, string(data), `"busiest_day":null`)
}

func TestNormalize_NumericDateOrdering(t *testing.T) {
	t.Parallel()

	rhythm := calendar.Normalize(raw("2024-01-11", 1, "2024-01-09", 1, "2024-01-10", 1))

	assert.Equal(t, 3, rhythm.LongestStreak)
	assert.Equal(t, 3, rhythm.CurrentStreak)
	assert.Equal(t, 3, rhythm.ActiveDays)
}

func TestNormalize_DropsMalformedEntries(t *testing.T) {
	t.Parallel()

	rhythm := calendar.Normalize(raw(
		"2024-01-09", 2,
		"2023-02-29", 50,
		"", 7,
		"garbage", 3,
		"2024-01-10", 1,
	))

	assert.Equal(t, 2, rhythm.TotalDays)
	assert.Equal(t, 3, rhythm.Total)
	assert.Len(t, rhythm.Days, 2)
}

func TestNormalize_MergesDuplicatesAndClampsNegative(t *testing.T) {
	t.Parallel()

	rhythm := calendar.Normalize(raw("2024-03-04", 2, "2024-03-04", 3, "2024-03-05", -4))

	require.Len(t, rhythm.Days, 2)
	assert.Equal(t, 5, rhythm.Days[0].Count)
	assert.Equal(t, 0, rhythm.Days[1].Count)
	assert.Equal(t, 1, rhythm.ActiveDays)
	assert.Equal(t, 0, rhythm.CurrentStreak)
}

func TestNormalize_HistogramSumMatchesTotal(t *testing.T) {
	t.Parallel()

	input := raw(
		"2024-01-31", 4,
		"2024-02-01", 6,
		"2024-07-15", 11,
		"2024-12-31", 9,
		"bad", 100,
	)

	rhythm := calendar.Normalize(input)

	var histogramSum int
	for _, bucket := range rhythm.MonthlyHistogram {
		histogramSum += bucket.Count
	}

	assert.Equal(t, 30, rhythm.Total)
	assert.Equal(t, rhythm.Total, histogramSum)
	assert.Equal(t, "July", rhythm.BusiestMonth)
	assert.Equal(t, 11, rhythm.BusiestMonthCount)
}

func TestNormalize_StreakCrossesMonthAndLeapDay(t *testing.T) {
	t.Parallel()

	rhythm := calendar.Normalize(raw(
		"2024-01-30", 1, "2024-01-31", 1, "2024-02-01", 1,
		"2024-02-28", 1, "2024-02-29", 1, "2024-03-01", 1, "2024-03-02", 1,
	))

	assert.Equal(t, 4, rhythm.LongestStreak)
	assert.Equal(t, 4, rhythm.CurrentStreak)
}

func TestNormalize_CurrentStreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []calendar.RawDay
		expected int
	}{
		{
			name:     "latest_day_zero",
			input:    raw("2024-05-01", 1, "2024-05-02", 1, "2024-05-03", 0),
			expected: 0,
		},
		{
			name:     "stops_at_zero",
			input:    raw("2024-05-01", 1, "2024-05-02", 0, "2024-05-03", 1, "2024-05-04", 2),
			expected: 2,
		},
		{
			name:     "stops_at_gap",
			input:    raw("2024-05-01", 1, "2024-05-02", 1, "2024-05-04", 1),
			expected: 1,
		},
		{
			name:     "whole_calendar",
			input:    raw("2024-05-01", 1, "2024-05-02", 1, "2024-05-03", 1),
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rhythm := calendar.Normalize(tt.input)
			assert.Equal(t, tt.expected, rhythm.CurrentStreak)
			assert.GreaterOrEqual(t, rhythm.LongestStreak, rhythm.CurrentStreak)
		})
	}
}

func TestNormalize_LongestStreakResetsOnZero(t *testing.T) {
	t.Parallel()

	rhythm := calendar.Normalize(raw(
		"2024-05-01", 1, "2024-05-02", 1, "2024-05-03", 0,
		"2024-05-04", 1, "2024-05-05", 1, "2024-05-06", 1,
		"2024-05-08", 1,
	))

	assert.Equal(t, 3, rhythm.LongestStreak)
	assert.Equal(t, 1, rhythm.CurrentStreak)
}

func TestNormalize_BusiestDayFirstWins(t *testing.T) {
	t.Parallel()

	rhythm := calendar.Normalize(raw("2024-06-02", 8, "2024-06-01", 8, "2024-06-03", 2))

	require.NotNil(t, rhythm.BusiestDay)
	assert.Equal(t, "2024-06-01", rhythm.BusiestDay.Date.String())
	assert.Equal(t, 8, rhythm.BusiestDay.Count)
}

func TestNormalize_FavoriteWeekdaysTie(t *testing.T) {
	t.Parallel()

	// 2024-01-08 is a Monday and 2024-01-10 a Wednesday.
	rhythm := calendar.Normalize(raw("2024-01-08", 3, "2024-01-10", 3, "2024-01-11", 1))

	assert.Equal(t, []string{"Monday", "Wednesday"}, rhythm.FavoriteWeekdays)
}

func TestNormalize_AllZeroHasNoFavorites(t *testing.T) {
	t.Parallel()

	rhythm := calendar.Normalize(raw("2024-01-08", 0, "2024-01-09", 0))

	assert.Empty(t, rhythm.FavoriteWeekdays)
	assert.Empty(t, rhythm.BusiestMonth)
	require.NotNil(t, rhythm.BusiestDay)
	assert.Equal(t, 2, rhythm.TotalDays)
	assert.Zero(t, rhythm.ActiveDays)
}

func TestNormalize_WeekendCount(t *testing.T) {
	t.Parallel()

	// 2024-01-06 is a Saturday, 2024-01-07 a Sunday.
	rhythm := calendar.Normalize(raw("2024-01-05", 4, "2024-01-06", 2, "2024-01-07", 3))

	assert.Equal(t, 5, rhythm.WeekendCount)
	assert.Equal(t, 3, rhythm.WeekdayDistribution[time.Sunday].Count)
	assert.Equal(t, "Sunday", rhythm.WeekdayDistribution[time.Sunday].Weekday)
}

func TestRhythm_Consistency(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, calendar.Rhythm{}.Consistency(), 0.0001)
	assert.InDelta(t, 0.5, calendar.Rhythm{ActiveDays: 5, TotalDays: 10}.Consistency(), 0.0001)
}

// --- Context Tests ---

func TestPeakDayContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		date     calendar.Date
		expected string
	}{
		{name: "end_of_year", date: calendar.NewDate(testLeapYear, time.December, 20), expected: "End-of-year sprint"},
		{name: "new_year", date: calendar.NewDate(testLeapYear, time.January, 10), expected: "New year momentum"},
		{name: "saturday", date: calendar.NewDate(testLeapYear, time.March, 9), expected: "Saturday deep work"},
		{name: "sunday", date: calendar.NewDate(testLeapYear, time.March, 10), expected: "Sunday deep work"},
		{name: "monday", date: calendar.NewDate(testLeapYear, time.March, 11), expected: "Monday motivation"},
		{name: "friday", date: calendar.NewDate(testLeapYear, time.March, 15), expected: "Friday push"},
		{name: "midweek", date: calendar.NewDate(testLeapYear, time.March, 13), expected: "Mid-week focus"},
		{name: "zero", date: calendar.Date{}, expected: "Peak day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, calendar.PeakDayContext(tt.date))
		})
	}
}

// --- Range Tests ---

func TestYearRange(t *testing.T) {
	t.Parallel()

	r := calendar.YearRange(testLeapYear)

	assert.Equal(t, "2024-01-01T00:00:00Z", r.From.Format(time.RFC3339))
	assert.Equal(t, "2024-12-31T23:59:59Z", r.To.Format(time.RFC3339))
}

func TestMonthRange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 29, calendar.MonthRange(testLeapYear, time.February).To.Day())
	assert.Equal(t, 28, calendar.MonthRange(testCommonYear, time.February).To.Day())
	assert.Equal(t, 31, calendar.MonthRange(testCommonYear, time.December).To.Day())

	ranges := calendar.MonthRanges(testCommonYear)
	require.Len(t, ranges, 12)
	assert.Equal(t, time.January, ranges[0].From.Month())
	assert.Equal(t, time.December, ranges[11].To.Month())
}

func TestRhythmMetric(t *testing.T) {
	t.Parallel()

	metric := calendar.NewRhythmMetric()

	assert.Equal(t, "rhythm", metric.Name())
	assert.Equal(t, 2, metric.Compute(raw("2024-01-01", 1, "2024-01-02", 1)).LongestStreak)
}
