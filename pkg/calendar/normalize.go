package calendar

import (
	"slices"
	"time"

	"github.com/Sumatoshi-tech/gitrewind/pkg/alg/stats"
)

const (
	monthsPerYear = 12
	daysPerWeek   = 7
)

// RawDay is one upstream calendar entry before validation.
type RawDay struct {
	Date  string
	Count int
}

// Day is a validated calendar entry.
type Day struct {
	Date  Date `json:"date"  yaml:"date"`
	Count int  `json:"count" yaml:"count"`
}

// MonthCount is one bucket of the monthly histogram.
type MonthCount struct {
	Month string `json:"month" yaml:"month"`
	Count int    `json:"count" yaml:"count"`
}

// WeekdayCount is one bucket of the weekday distribution.
type WeekdayCount struct {
	Weekday string `json:"weekday" yaml:"weekday"`
	Count   int    `json:"count"   yaml:"count"`
}

// Rhythm holds the calendar statistics of a year.
type Rhythm struct {
	ActiveDays          int            `json:"active_days"          yaml:"active_days"`
	TotalDays           int            `json:"total_days"           yaml:"total_days"`
	LongestStreak       int            `json:"longest_streak"       yaml:"longest_streak"`
	CurrentStreak       int            `json:"current_streak"       yaml:"current_streak"`
	Total               int            `json:"total"                yaml:"total"`
	BusiestMonth        string         `json:"busiest_month"        yaml:"busiest_month"`
	BusiestMonthCount   int            `json:"busiest_month_count"  yaml:"busiest_month_count"`
	MonthlyHistogram    []MonthCount   `json:"monthly_histogram"    yaml:"monthly_histogram"`
	BusiestDay          *Day           `json:"busiest_day"          yaml:"busiest_day"`
	WeekdayDistribution []WeekdayCount `json:"weekday_distribution" yaml:"weekday_distribution"`
	FavoriteWeekdays    []string       `json:"favorite_weekdays"    yaml:"favorite_weekdays"`
	WeekendCount        int            `json:"weekend_count"        yaml:"weekend_count"`
	Days                []Day          `json:"days"                 yaml:"days"`
}

// Consistency returns the share of calendar days with activity, in [0, 1].
func (r Rhythm) Consistency() float64 {
	return stats.Ratio(r.ActiveDays, r.TotalDays)
}

// Validate parses and orders raw entries. Entries with unparseable dates are
// dropped, duplicate dates are merged by summing their counts, and negative
// counts are treated as zero. The result is sorted chronologically.
func Validate(raw []RawDay) []Day {
	byDate := make(map[Date]int, len(raw))

	for _, entry := range raw {
		date, err := ParseDate(entry.Date)
		if err != nil {
			continue
		}

		byDate[date] += max(entry.Count, 0)
	}

	days := make([]Day, 0, len(byDate))
	for date, count := range byDate {
		days = append(days, Day{Date: date, Count: count})
	}

	slices.SortFunc(days, func(a, b Day) int { return a.Date.Compare(b.Date) })

	return days
}

// Normalize validates raw entries and computes the rhythm statistics.
// It never fails: malformed entries are ignored and an empty input yields a
// zero Rhythm with a nil busiest day and no favorite weekdays.
func Normalize(raw []RawDay) Rhythm {
	return FromDays(Validate(raw))
}

// FromDays computes the rhythm statistics of days, which must be sorted
// chronologically and free of duplicates, as returned by [Validate].
func FromDays(days []Day) Rhythm {
	monthly := make([]int, monthsPerYear)
	weekly := make([]int, daysPerWeek)

	rhythm := Rhythm{
		TotalDays: len(days),
		Days:      days,
	}

	for _, day := range days {
		if day.Count > 0 {
			rhythm.ActiveDays++
		}

		rhythm.Total += day.Count
		monthly[day.Date.Month-1] += day.Count
		weekly[day.Date.Weekday()] += day.Count
	}

	rhythm.LongestStreak = LongestStreak(days)
	rhythm.CurrentStreak = CurrentStreak(days)
	rhythm.MonthlyHistogram = monthHistogram(monthly)
	rhythm.WeekdayDistribution = weekdayDistribution(weekly)
	rhythm.WeekendCount = weekly[time.Saturday] + weekly[time.Sunday]
	rhythm.FavoriteWeekdays = favoriteWeekdays(weekly)

	if rhythm.Total > 0 {
		idx, _ := stats.ArgMax(monthly)
		rhythm.BusiestMonth = time.Month(idx + 1).String()
		rhythm.BusiestMonthCount = monthly[idx]
	}

	if idx, ok := stats.ArgMaxFunc(days, func(d Day) int { return d.Count }); ok {
		busiest := days[idx]
		rhythm.BusiestDay = &busiest
	}

	return rhythm
}

// LongestStreak returns the longest run of consecutive calendar days with a
// positive count. days must be sorted chronologically.
func LongestStreak(days []Day) int {
	var (
		longest, run int
		last         Date
	)

	for _, day := range days {
		if day.Count <= 0 {
			run = 0

			continue
		}

		if run > 0 && day.Date == last.AddDays(1) {
			run++
		} else {
			run = 1
		}

		last = day.Date
		longest = max(longest, run)
	}

	return longest
}

// CurrentStreak returns the run of consecutive active days ending at the most
// recent entry. It is 0 when the most recent entry has no activity.
func CurrentStreak(days []Day) int {
	if len(days) == 0 || days[len(days)-1].Count <= 0 {
		return 0
	}

	streak := 1

	for i := len(days) - 2; i >= 0; i-- {
		if days[i].Count <= 0 || days[i].Date.AddDays(1) != days[i+1].Date {
			break
		}

		streak++
	}

	return streak
}

func monthHistogram(monthly []int) []MonthCount {
	result := make([]MonthCount, len(monthly))

	for i, count := range monthly {
		result[i] = MonthCount{Month: time.Month(i + 1).String(), Count: count}
	}

	return result
}

func weekdayDistribution(weekly []int) []WeekdayCount {
	result := make([]WeekdayCount, len(weekly))

	for i, count := range weekly {
		result[i] = WeekdayCount{Weekday: time.Weekday(i).String(), Count: count}
	}

	return result
}

func favoriteWeekdays(weekly []int) []string {
	peaks := stats.ArgMaxAll(weekly)

	names := make([]string, 0, len(peaks))
	for _, idx := range peaks {
		names = append(names, time.Weekday(idx).String())
	}

	return names
}
