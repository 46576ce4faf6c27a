package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/gitrewind/pkg/activity"
	"github.com/Sumatoshi-tech/gitrewind/pkg/compare"
	"github.com/Sumatoshi-tech/gitrewind/pkg/metrics"
	"github.com/Sumatoshi-tech/gitrewind/pkg/textutil"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

const percentScale = 100

// printer accumulates a text report.
type printer struct {
	sb      strings.Builder
	title   *color.Color
	heading *color.Color
	muted   *color.Color
	good    *color.Color
	bad     *color.Color
}

func newPrinter(enabled bool) *printer {
	p := &printer{
		title:   color.New(color.FgCyan, color.Bold),
		heading: color.New(color.FgMagenta, color.Bold),
		muted:   color.New(color.Faint),
		good:    color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
	}

	for _, c := range []*color.Color{p.title, p.heading, p.muted, p.good, p.bad} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (p *printer) String() string { return p.sb.String() }

func (p *printer) line(format string, args ...any) {
	fmt.Fprintf(&p.sb, format+"\n", args...)
}

func (p *printer) blank() { p.sb.WriteByte('\n') }

func (p *printer) section(name string) {
	p.blank()
	p.line("%s", p.heading.Sprint(strings.ToUpper(name)))
}

func (p *printer) optional(msg string, ok bool) {
	if ok {
		p.line("%s", p.muted.Sprint(msg))
	}
}

func (p *printer) table(tbl table.Writer) {
	p.line("%s", tbl.Render())
}

// newTable returns a borderless go-pretty table.
func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Format.Footer = text.FormatDefault

	return tbl
}

func comma(n int) string { return humanize.Comma(int64(n)) }

func (p *printer) summary(s yearstats.YearSummary) {
	level := s.ActivityLevel

	who := s.User.Username
	if s.User.Name != "" {
		who = fmt.Sprintf("%s (%s)", s.User.Username, s.User.Name)
	}

	p.line("%s", p.title.Sprintf("%s: %d in review", who, s.Year))
	p.line("%s %s, %s activity", comma(s.TotalContributions),
		textutil.Pluralize(s.TotalContributions, "contribution", "contributions"), level)
	p.completeness(s)

	p.rhythm(s)
	p.craft(s)
	p.collaboration(s)
	p.peakMoments(s)

	p.section("Epilogue")
	p.line("%s", activity.EpilogueMessage(level))
	p.optional(activity.EpilogueContext(level, s.Rhythm.ActiveDays))
}

func (p *printer) completeness(s yearstats.YearSummary) {
	dc := s.DataCompleteness

	p.line("%s", p.muted.Sprintf("Data: %d%% accessible, %s %s restricted, %s %s analyzed",
		dc.PercentageAccessible,
		comma(dc.RestrictedContributions), textutil.Pluralize(dc.RestrictedContributions, "contribution", "contributions"),
		comma(dc.ReposAnalyzed), textutil.Pluralize(dc.ReposAnalyzed, "repository", "repositories")))

	var truncated []string

	if dc.Truncation.PullRequests {
		truncated = append(truncated, "pull requests")
	}

	if dc.Truncation.PullRequestReviews {
		truncated = append(truncated, "reviews")
	}

	if dc.Truncation.Issues {
		truncated = append(truncated, "issues")
	}

	if dc.Truncation.Repositories {
		truncated = append(truncated, "repositories")
	}

	if len(truncated) > 0 {
		p.line("%s", p.bad.Sprintf("Sampled: %s exceed the page limit; counts may be partial.", textutil.JoinList(truncated)))
	}
}

func (p *printer) rhythm(s yearstats.YearSummary) {
	level := s.ActivityLevel
	r := s.Rhythm

	p.section("Rhythm")
	p.line("%s", activity.RhythmSubtitle(level))

	tbl := newTable()
	tbl.AppendRow(table.Row{"Active days", fmt.Sprintf("%s of %s", comma(r.ActiveDays), comma(r.TotalDays))})
	tbl.AppendRow(table.Row{"Longest streak", days(r.LongestStreak)})
	tbl.AppendRow(table.Row{"Current streak", days(r.CurrentStreak)})

	if r.BusiestMonth != "" {
		tbl.AppendRow(table.Row{"Busiest month", fmt.Sprintf("%s (%s)", r.BusiestMonth, comma(r.BusiestMonthCount))})
	}

	if len(r.FavoriteWeekdays) > 0 {
		tbl.AppendRow(table.Row{"Favorite days", textutil.JoinList(r.FavoriteWeekdays)})
	}

	p.table(tbl)

	consistency := int(r.Consistency()*percentScale + 0.5)
	p.optional(activity.RhythmActiveContext(level, consistency))

	if r.Total > 0 {
		months := newTable()
		months.AppendHeader(table.Row{"Month", "Contributions"})

		for _, m := range r.MonthlyHistogram {
			if m.Count > 0 {
				months.AppendRow(table.Row{m.Month, comma(m.Count)})
			}
		}

		p.table(months)
	}

	p.optional(activity.RhythmTransition(level))
}

func (p *printer) craft(s yearstats.YearSummary) {
	level := s.ActivityLevel
	c := s.Craft

	p.section("Craft")
	p.line("%s", activity.CraftSubtitle(level))

	if len(c.Languages) == 0 {
		p.line("%s", activity.CraftEmpty)

		return
	}

	p.line("%s", activity.CraftLanguageContext(level, c.PrimaryLanguage))

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Language", "Share", "Color"})

	for _, lang := range c.Languages {
		tbl.AppendRow(table.Row{lang.Name, strconv.Itoa(lang.Percentage) + "%", lang.Color})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%d %s", c.TotalLanguages, textutil.Pluralize(c.TotalLanguages, "language", "languages")),
		humanize.Bytes(uint64(max(c.TotalBytes, 0))), ""})
	p.table(tbl)

	if c.TopRepository != nil {
		p.line("Top repository: %s (%s %s)", *c.TopRepository, comma(c.TopRepositoryCommits),
			textutil.Pluralize(c.TopRepositoryCommits, "commit", "commits"))
	}

	p.optional(activity.CraftTransition(level))
}

func (p *printer) collaboration(s yearstats.YearSummary) {
	level := s.ActivityLevel
	c := s.Collaboration

	p.section("Collaboration")
	p.line("%s", activity.CollaborationSubtitle(level))

	if c.PullRequestsOpened == 0 && c.PullRequestsReviewed == 0 && c.IssuesClosed == 0 && c.UniqueCollaborators == 0 {
		p.line("%s", activity.CollaborationEmpty)

		return
	}

	merged := activity.CollaborationMergedContext(level, c.PullRequestsMerged)
	if c.IsMergeRateApproximate {
		merged += p.muted.Sprint(" (estimated from a sample)")
	}

	p.line("%s", merged)

	tbl := newTable()
	tbl.AppendRow(table.Row{"Pull requests opened", comma(c.PullRequestsOpened)})
	tbl.AppendRow(table.Row{"Pull requests reviewed", comma(c.PullRequestsReviewed)})
	tbl.AppendRow(table.Row{"Issues closed", comma(c.IssuesClosed)})
	tbl.AppendRow(table.Row{"Review style", fmt.Sprintf("%s (%.2f reviews per PR)", c.ReviewStyle, c.ReviewRatio)})
	tbl.AppendRow(table.Row{"Collaborators", comma(c.UniqueCollaborators)})
	p.table(tbl)

	if len(c.TopCollaborators) > 0 {
		top := newTable()
		top.AppendHeader(table.Row{"Collaborator", "Reviews"})

		for _, tally := range c.TopCollaborators {
			top.AppendRow(table.Row{tally.Username, comma(tally.Interactions)})
		}

		p.table(top)
	}

	p.optional(activity.CollaborationTransition(level))
}

func (p *printer) peakMoments(s yearstats.YearSummary) {
	level := s.ActivityLevel
	pm := s.PeakMoments

	p.section("Peak moments")
	p.line("%s", activity.PeakMomentsSubtitle(level))

	if pm.BusiestDay == nil {
		p.line("%s", activity.PeakMomentsEmpty)

		return
	}

	p.line("Busiest day: %s with %s. %s", pm.BusiestDay.FormattedDate,
		contributions(pm.BusiestDay.Commits), pm.BusiestDay.Context)

	tbl := newTable()
	tbl.AppendRow(table.Row{"Favorite time", string(pm.FavoriteTimeOfDay)})

	if len(pm.FavoriteDaysOfWeek) > 0 {
		tbl.AppendRow(table.Row{"Favorite days", textutil.JoinList(pm.FavoriteDaysOfWeek)})
	}

	tbl.AppendRow(table.Row{"Weekend contributions", comma(pm.WeekendCommits)})
	tbl.AppendRow(table.Row{"Per active day", fmt.Sprintf("%.1f", pm.AverageCommitsPerActiveDay)})
	p.table(tbl)

	p.optional(activity.PeakMomentsTransition(level))
}

func (p *printer) comparison(c compare.YearComparison) {
	header := fmt.Sprintf("%d vs %d: %s", c.CurrentYear, c.PreviousYear, c.Mode)
	if c.Mode == compare.ModeSamePeriod {
		header += fmt.Sprintf(", first %s", days(c.ElapsedDays))
	}

	p.line("%s", p.title.Sprint(header))

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Metric", "Change"})
	tbl.AppendRow(table.Row{"Contributions", fmt.Sprintf("%s (%s)",
		p.signed(c.ContributionsDelta), p.signedPercent(c.ContributionsPercentChange))})
	tbl.AppendRow(table.Row{"Active days", p.signed(c.ActiveDaysDelta)})
	tbl.AppendRow(table.Row{"Longest streak", p.signed(c.LongestStreakDelta)})
	tbl.AppendRow(table.Row{"Pull requests", p.signed(c.PullRequestsDelta)})
	baseline := comma(c.BaselineContributions)
	if c.BaselineUnavailable {
		baseline = "unavailable"
	}

	tbl.AppendRow(table.Row{"Baseline", baseline})
	tbl.AppendRow(table.Row{"Previous year total", comma(c.PreviousYearTotal)})

	if c.ProjectedYearTotal != nil {
		tbl.AppendRow(table.Row{"Projected year total", comma(*c.ProjectedYearTotal)})
	}

	p.table(tbl)

	if len(c.NewLanguages) > 0 {
		p.line("New languages: %s", textutil.JoinList(c.NewLanguages))
	}

	if len(c.DroppedLanguages) > 0 {
		p.line("Set aside: %s", textutil.JoinList(c.DroppedLanguages))
	}

	if len(c.NarrativeInsights) == 0 {
		return
	}

	p.section("Insights")

	for _, insight := range c.NarrativeInsights {
		p.line("  - %s", insight)
	}
}

func (p *printer) metrics(infos []metrics.Info) {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Name", "Display name", "Type", "Description"})

	for _, info := range infos {
		tbl.AppendRow(table.Row{info.Name, info.DisplayName, info.Type, info.Description})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d metrics", len(infos))})
	p.table(tbl)
}

func (p *printer) signed(n int) string {
	out := fmt.Sprintf("%+d", n)

	switch {
	case n > 0:
		return p.good.Sprint(out)
	case n < 0:
		return p.bad.Sprint(out)
	default:
		return out
	}
}

func (p *printer) signedPercent(n int) string {
	return p.signed(n) + "%"
}

func days(n int) string {
	return comma(n) + " " + textutil.Pluralize(n, "day", "days")
}

func contributions(n int) string {
	return comma(n) + " " + textutil.Pluralize(n, "contribution", "contributions")
}
