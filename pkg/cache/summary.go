package cache

import (
	"strings"
	"time"
)

// SummaryKey identifies one user's summary for one year. Logins are
// case-insensitive upstream, so the username is stored lowercased.
type SummaryKey struct {
	Username string
	Year     int
}

// NewSummaryKey builds a SummaryKey, normalizing the username.
func NewSummaryKey(username string, year int) SummaryKey {
	return SummaryKey{Username: strings.ToLower(strings.TrimSpace(username)), Year: year}
}

// TTLForYear returns how long a summary for year stays fresh: the current
// calendar year still changes, so it gets currentTTL; past years get pastTTL.
// now is the moment of insertion.
func TTLForYear(year int, now time.Time, currentTTL, pastTTL time.Duration) time.Duration {
	if year >= now.UTC().Year() {
		return currentTTL
	}

	return pastTTL
}
