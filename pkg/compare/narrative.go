package compare

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/gitrewind/pkg/alg/stats"
	"github.com/Sumatoshi-tech/gitrewind/pkg/textutil"
)

// Noise thresholds below which a change is not worth a sentence.
const (
	ActiveDaysDeltaThreshold = 5
	StreakDeltaThreshold     = 3
	PRDeltaThreshold         = 3

	// TinyBaseline is the largest same-window total that counts as a very
	// low bar in the first month.
	TinyBaseline = 10

	// StreakComparableAfter is the elapsed day count after which partial
	// streaks and consistency are compared.
	StreakComparableAfter = 180
)

// Stage is the elapsed-day bucket of a same-period comparison.
type Stage int

// Same-period stages.
const (
	StageEarly Stage = iota + 1
	StageTrajectory
	StageHalfYear
	StagePace
	StageProjection
)

// Upper bounds of each stage, in elapsed days.
const (
	earlyUntil      = 30
	trajectoryUntil = 90
	halfYearUntil   = 180
	paceUntil       = 270
)

// StageFor buckets an elapsed day count.
func StageFor(elapsed int) Stage {
	switch {
	case elapsed <= earlyUntil:
		return StageEarly
	case elapsed <= trajectoryUntil:
		return StageTrajectory
	case elapsed <= halfYearUntil:
		return StageHalfYear
	case elapsed <= paceUntil:
		return StagePace
	default:
		return StageProjection
	}
}

// Signals is everything the narrative reads. It holds no raw calendars, so
// narrative policy can be exercised without building summaries.
type Signals struct {
	Mode    Mode
	Elapsed int

	// BaselineUnavailable suppresses every line that reads the previous
	// year's same-period window.
	BaselineUnavailable bool

	CurrentTotal       int
	BaselineTotal      int
	PreviousYearTotal  int
	ProjectedYearTotal *int

	ContributionsPercentChange int
	ActiveDaysDelta            int
	ConsistencyImproved        bool
	LongestStreakDelta         int
	PullRequestsDelta          int

	NewLanguages     []string
	DroppedLanguages []string

	PreviousPrimaryLanguage string
	CurrentPrimaryLanguage  string
}

// Narrate returns the ordered insights for the signals. The contribution
// change always comes first.
func Narrate(s Signals) []string {
	insights := []string{contributionChange(s)}

	if s.Mode == ModeSamePeriod && s.Elapsed > 0 && !s.BaselineUnavailable {
		if line, ok := stageLine(s); ok {
			insights = append(insights, line)
		}
	}

	timingComparable := !s.BaselineUnavailable && (s.Mode == ModeFullYear || s.Elapsed > StreakComparableAfter)

	if timingComparable && s.ConsistencyImproved && s.ActiveDaysDelta > ActiveDaysDeltaThreshold {
		insights = append(insights, fmt.Sprintf("You were more consistent, coding %d more days.", s.ActiveDaysDelta))
	}

	if timingComparable {
		switch {
		case s.LongestStreakDelta > StreakDeltaThreshold:
			insights = append(insights, fmt.Sprintf("Your longest streak grew by %d days.", s.LongestStreakDelta))
		case s.LongestStreakDelta < -StreakDeltaThreshold:
			insights = append(insights, fmt.Sprintf(
				"Your longest streak was %d days shorter, but streaks aren't everything.", -s.LongestStreakDelta))
		}
	}

	switch len(s.NewLanguages) {
	case 0:
	case 1:
		insights = append(insights, s.NewLanguages[0]+" entered your stack for the first time.")
	default:
		insights = append(insights, "New languages this year: "+textutil.JoinList(s.NewLanguages)+".")
	}

	switch len(s.DroppedLanguages) {
	case 0:
	case 1:
		insights = append(insights, "You stepped away from "+s.DroppedLanguages[0]+" this year.")
	default:
		insights = append(insights, "Languages you set aside this year: "+textutil.JoinList(s.DroppedLanguages)+".")
	}

	if s.PullRequestsDelta > PRDeltaThreshold {
		insights = append(insights, fmt.Sprintf("You merged %d more PRs than last year.", s.PullRequestsDelta))
	}

	if s.CurrentPrimaryLanguage != s.PreviousPrimaryLanguage {
		insights = append(insights, fmt.Sprintf("Your primary language shifted from %s to %s.",
			s.PreviousPrimaryLanguage, s.CurrentPrimaryLanguage))
	}

	return insights
}

func contributionChange(s Signals) string {
	if s.BaselineUnavailable {
		return fmt.Sprintf("You have %s so far. Last year's summary has no daily breakdown, "+
			"so the same period can't be compared.", contributions(s.CurrentTotal))
	}

	than := "than last year"
	since := "last year"
	matched := "You matched last year's contribution count exactly."

	if s.Mode == ModeSamePeriod {
		than = "than the same period last year"
		since = "in the same period last year"
		matched = "You matched last year's contribution count for the same period exactly."
	}

	switch pct := s.ContributionsPercentChange; {
	case s.BaselineTotal == 0 && s.CurrentTotal > 0:
		return fmt.Sprintf("You made %s, up from none %s.", contributions(s.CurrentTotal), since)
	case pct > 0:
		return fmt.Sprintf("You contributed %d%% more %s.", pct, than)
	case pct < 0:
		return fmt.Sprintf("You contributed %d%% less %s. Quality over quantity.", -pct, than)
	default:
		return matched
	}
}

// stageLine frames a partial year by how much of it has elapsed.
func stageLine(s Signals) (string, bool) {
	switch StageFor(s.Elapsed) {
	case StageEarly:
		if s.BaselineTotal > 0 && s.BaselineTotal <= TinyBaseline && s.CurrentTotal > s.BaselineTotal {
			return fmt.Sprintf("You've already beaten the %s you had in the first %s last year.",
				contributions(s.BaselineTotal), days(s.Elapsed)), true
		}

		return fmt.Sprintf("%s in, you have %s against %s over the same days last year.",
			days(s.Elapsed), contributions(s.CurrentTotal), humanize.Comma(int64(s.BaselineTotal))), true

	case StageTrajectory:
		if s.ProjectedYearTotal == nil {
			return "", false
		}

		return fmt.Sprintf("You're tracking toward about %s this year, %s last year's %s.",
			contributions(*s.ProjectedYearTotal), relation(*s.ProjectedYearTotal, s.PreviousYearTotal),
			humanize.Comma(int64(s.PreviousYearTotal))), true

	case StageHalfYear:
		if s.PreviousYearTotal == 0 {
			return "Last year had no contributions, so everything this year is new ground.", true
		}

		return fmt.Sprintf("You've already reached %d%% of last year's total of %s.",
			stats.Percent(s.CurrentTotal, s.PreviousYearTotal, 0), contributions(s.PreviousYearTotal)), true

	case StagePace:
		return fmt.Sprintf("Your daily pace is %.1f contributions, versus %.1f over the same days last year.",
			stats.Ratio(s.CurrentTotal, s.Elapsed), stats.Ratio(s.BaselineTotal, s.Elapsed)), true

	default:
		if s.ProjectedYearTotal == nil {
			return "", false
		}

		return fmt.Sprintf("At this pace you'll finish the year with about %s, compared with %s last year.",
			contributions(*s.ProjectedYearTotal), humanize.Comma(int64(s.PreviousYearTotal))), true
	}
}

func relation(projected, previous int) string {
	switch {
	case projected > previous:
		return "ahead of"
	case projected < previous:
		return "behind"
	default:
		return "level with"
	}
}

func contributions(n int) string {
	return humanize.Comma(int64(n)) + " " + textutil.Pluralize(n, "contribution", "contributions")
}

func days(n int) string {
	return humanize.Comma(int64(n)) + " " + textutil.Pluralize(n, "day", "days")
}
