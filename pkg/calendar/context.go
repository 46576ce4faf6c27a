package calendar

import "time"

const (
	endOfYearSprintFrom  = 15
	newYearMomentumUntil = 15
)

// PeakDayContext returns a short label describing when a peak day happened.
// The zero Date yields the generic "Peak day".
func PeakDayContext(d Date) string {
	if d.IsZero() {
		return "Peak day"
	}

	weekday := d.Weekday()

	switch {
	case d.Month == time.December && d.Day >= endOfYearSprintFrom:
		return "End-of-year sprint"
	case d.Month == time.January && d.Day <= newYearMomentumUntil:
		return "New year momentum"
	case weekday == time.Saturday || weekday == time.Sunday:
		return weekday.String() + " deep work"
	case weekday == time.Monday:
		return "Monday motivation"
	case weekday == time.Friday:
		return "Friday push"
	default:
		return "Mid-week focus"
	}
}

// Range is a closed UTC time window.
type Range struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// YearRange returns the window from January 1st 00:00:00 to December 31st
// 23:59:59 UTC of year.
func YearRange(year int) Range {
	return Range{
		From: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
	}
}

// MonthRange returns the window covering month of year, ending at 23:59:59 UTC
// on the last day of the month.
func MonthRange(year int, month time.Month) Range {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	return Range{
		From: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(year, month, lastDay, 23, 59, 59, 0, time.UTC),
	}
}

// MonthRanges returns the twelve monthly windows of year in order.
func MonthRanges(year int) []Range {
	ranges := make([]Range, 0, monthsPerYear)

	for m := time.January; m <= time.December; m++ {
		ranges = append(ranges, MonthRange(year, m))
	}

	return ranges
}
