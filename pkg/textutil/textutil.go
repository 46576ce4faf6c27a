// Package textutil provides small English formatting helpers for report copy:
// list joining, pluralization, and ordinal dates.
package textutil

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// JoinList joins items into an English list with an Oxford comma:
// "A", "A and B", "A, B, and C". An empty list gives an empty string.
func JoinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2: //nolint:mnd // two items join without a comma.
		return items[0] + " and " + items[1]
	}

	last := len(items) - 1

	return strings.Join(items[:last], ", ") + ", and " + items[last]
}

// Pluralize returns singular when n is exactly 1, plural otherwise.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}

	return plural
}

// OrdinalDate formats a month and day like "January 9th".
func OrdinalDate(month time.Month, day int) string {
	return month.String() + " " + humanize.Ordinal(day)
}
