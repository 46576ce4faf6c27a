// Package yearstats assembles the yearly summary from one fetched payload.
package yearstats

import (
	"github.com/Sumatoshi-tech/gitrewind/pkg/activity"
	"github.com/Sumatoshi-tech/gitrewind/pkg/calendar"
	"github.com/Sumatoshi-tech/gitrewind/pkg/collab"
	"github.com/Sumatoshi-tech/gitrewind/pkg/completeness"
	"github.com/Sumatoshi-tech/gitrewind/pkg/languages"
)

// TimeOfDay buckets when contributions happen.
type TimeOfDay string

// FavoriteTimeOfDay is reported for every year. The calendar carries no
// commit timestamps, so the real bucket cannot be derived.
const FavoriteTimeOfDay TimeOfDay = "evening"

// User identifies the account a summary belongs to.
type User struct {
	Username  string `json:"username"   yaml:"username"`
	Name      string `json:"name"       yaml:"name"`
	AvatarURL string `json:"avatar_url" yaml:"avatar_url"`
}

// BusiestDay is the single most active calendar day.
type BusiestDay struct {
	Date          calendar.Date `json:"date"           yaml:"date"`
	FormattedDate string        `json:"formatted_date" yaml:"formatted_date"`
	Commits       int           `json:"commits"        yaml:"commits"`
	Context       string        `json:"context"        yaml:"context"`
}

// PeakMoments describes when the year's activity peaked.
type PeakMoments struct {
	BusiestDay                 *BusiestDay `json:"busiest_day"                    yaml:"busiest_day"`
	FavoriteTimeOfDay          TimeOfDay   `json:"favorite_time_of_day"           yaml:"favorite_time_of_day"`
	FavoriteDaysOfWeek         []string    `json:"favorite_days_of_week"          yaml:"favorite_days_of_week"`
	LateNightCommits           int         `json:"late_night_commits"             yaml:"late_night_commits"`
	WeekendCommits             int         `json:"weekend_commits"                yaml:"weekend_commits"`
	AverageCommitsPerActiveDay float64     `json:"average_commits_per_active_day" yaml:"average_commits_per_active_day"`
}

// YearSummary is the fully computed record of one user's year. It is not
// mutated after assembly.
type YearSummary struct {
	User               User                          `json:"user"                yaml:"user"`
	Year               int                           `json:"year"                yaml:"year"`
	TotalContributions int                           `json:"total_contributions" yaml:"total_contributions"`
	DataCompleteness   completeness.DataCompleteness `json:"data_completeness"   yaml:"data_completeness"`
	Rhythm             calendar.Rhythm               `json:"rhythm"              yaml:"rhythm"`
	Craft              languages.Craft               `json:"craft"               yaml:"craft"`
	Collaboration      collab.Collaboration          `json:"collaboration"       yaml:"collaboration"`
	PeakMoments        PeakMoments                   `json:"peak_moments"        yaml:"peak_moments"`
	ActivityLevel      activity.Level                `json:"activity_level"      yaml:"activity_level"`
}
