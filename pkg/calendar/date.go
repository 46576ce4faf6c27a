// Package calendar normalizes daily contribution records and derives the
// rhythm statistics of a year: streaks, busiest month and day, and the
// weekday distribution. All date arithmetic is done on UTC civil dates.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted textual form of a calendar date.
const DateLayout = "2006-01-02"

// hoursPerDay is used to convert UTC midnight differences into day counts.
const hoursPerDay = 24

// ErrInvalidDate is returned when text does not hold a real YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a civil calendar date without time of day or zone.
// The zero value is not a valid date; use [Date.IsZero] to test for it.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the date for year, month, day. Out-of-range values are
// normalized the way [time.Date] normalizes them.
func NewDate(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the UTC calendar date of t.
func FromTime(t time.Time) Date {
	y, m, d := t.UTC().Date()

	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a strict YYYY-MM-DD date. Dates that do not exist on the
// calendar, such as 2023-02-29, are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}

	return FromTime(t), nil
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(DateLayout)
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// YearDay returns the day of the year of d within its own year, in [1, 366].
func (d Date) YearDay() int {
	return d.Time().YearDay()
}

// AddDays returns d shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// DaysSince returns the number of calendar days from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.Time().Sub(other.Time()).Hours() / hoursPerDay)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to, or
// after other.
func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// MarshalText implements [encoding.TextMarshaler].
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// IsLeapYear reports whether year has a February 29th.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return daysInLeapYear
	}

	return daysInCommonYear
}

const (
	daysInCommonYear = 365
	daysInLeapYear   = 366
)
