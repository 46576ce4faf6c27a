package yearstats

import (
	"github.com/Sumatoshi-tech/gitrewind/pkg/activity"
	"github.com/Sumatoshi-tech/gitrewind/pkg/alg/stats"
	"github.com/Sumatoshi-tech/gitrewind/pkg/calendar"
	"github.com/Sumatoshi-tech/gitrewind/pkg/collab"
	"github.com/Sumatoshi-tech/gitrewind/pkg/completeness"
	"github.com/Sumatoshi-tech/gitrewind/pkg/languages"
	"github.com/Sumatoshi-tech/gitrewind/pkg/metrics"
	"github.com/Sumatoshi-tech/gitrewind/pkg/textutil"
	"github.com/Sumatoshi-tech/gitrewind/pkg/upstream"
)

// Options configures the assembler.
type Options struct {
	// PageCap is the repository page size used for truncation detection;
	// zero uses completeness.DefaultPageCap.
	PageCap int
}

// Assembler composes the per-concern metrics into a YearSummary.
type Assembler struct {
	opts Options

	rhythm        *calendar.RhythmMetric
	languages     *languages.LanguagesMetric
	collaboration *collab.CollaborationMetric
	completeness  *completeness.CompletenessMetric
	level         *activity.LevelMetric
}

// NewAssembler creates an assembler with the given options.
func NewAssembler(opts Options) *Assembler {
	return &Assembler{
		opts:          opts,
		rhythm:        calendar.NewRhythmMetric(),
		languages:     languages.NewLanguagesMetric(),
		collaboration: collab.NewCollaborationMetric(),
		completeness:  completeness.NewCompletenessMetric(),
		level:         activity.NewLevelMetric(),
	}
}

// Assemble is a shorthand for NewAssembler(opts).Assemble(payload).
func Assemble(payload upstream.YearPayload, opts Options) YearSummary {
	return NewAssembler(opts).Assemble(payload)
}

// RegisterMetrics adds every metric a yearly summary is built from.
func RegisterMetrics(r *metrics.Registry) {
	metrics.Register(r, calendar.NewRhythmMetric())
	metrics.Register(r, languages.NewLanguagesMetric())
	metrics.Register(r, collab.NewCollaborationMetric())
	metrics.Register(r, collab.NewReviewStyleMetric())
	metrics.Register(r, completeness.NewCompletenessMetric())
	metrics.Register(r, activity.NewLevelMetric())
}

// Assemble builds the summary. Missing upstream sections are treated as
// empty; the payload is expected to have passed upstream.YearPayload.Validate.
func (a *Assembler) Assemble(payload upstream.YearPayload) YearSummary {
	user := payload.Contributions.User
	collection := user.Collection()

	summary := YearSummary{
		Year:               payload.Year,
		TotalContributions: collection.TotalContributions(),
	}

	if user != nil {
		summary.User = User{Username: user.Login, Name: user.DisplayName(), AvatarURL: user.AvatarURL}
	}

	summary.Rhythm = a.rhythm.Compute(rawDays(collection.Days()))

	primary := primaryRepos(collection.Repositories())
	supplementary := supplementaryRepos(payload.SupplementaryRepos())
	summary.Craft = a.languages.Compute(languages.Input{Primary: primary, Supplementary: supplementary})

	summary.Collaboration = a.collaboration.Compute(collabInput(summary.User.Username, collection))
	summary.DataCompleteness = a.completeness.Compute(a.completenessInput(payload, collection, primary, supplementary))
	summary.PeakMoments = peakMoments(summary.Rhythm, summary.TotalContributions)
	summary.ActivityLevel = a.level.Compute(activity.Input{
		TotalContributions: summary.TotalContributions,
		ActiveDays:         summary.Rhythm.ActiveDays,
	})

	return summary
}

func rawDays(days []upstream.ContributionDay) []calendar.RawDay {
	raw := make([]calendar.RawDay, 0, len(days))
	for _, day := range days {
		raw = append(raw, calendar.RawDay{Date: day.Date, Count: day.ContributionCount})
	}

	return raw
}

func primaryRepos(repos []upstream.RepositoryCommits) []languages.RepoContribution {
	out := make([]languages.RepoContribution, 0, len(repos))

	for _, repo := range repos {
		edges := repo.LanguageEdges()
		langs := make([]languages.LanguageBytes, 0, len(edges))

		for _, edge := range edges {
			langs = append(langs, languages.LanguageBytes{
				Name:  edge.Node.Name,
				Bytes: edge.Size,
				Color: edge.Node.ColorOrEmpty(),
			})
		}

		out = append(out, languages.RepoContribution{
			RepoID:      repo.ID(),
			CommitCount: repo.CommitCount(),
			Languages:   langs,
		})
	}

	return out
}

func supplementaryRepos(repos []upstream.SupplementaryRepo) []languages.RepoContribution {
	out := make([]languages.RepoContribution, 0, len(repos))

	for _, repo := range repos {
		langs := make([]languages.LanguageBytes, 0, len(repo.Languages))
		for _, lang := range repo.Languages {
			langs = append(langs, languages.LanguageBytes{Name: lang.Name, Bytes: lang.Bytes})
		}

		out = append(out, languages.RepoContribution{RepoID: repo.Repo, CommitCount: repo.Commits, Languages: langs})
	}

	return out
}

func collabInput(viewer string, collection *upstream.ContributionsCollection) collab.Input {
	in := collab.Input{Viewer: viewer}

	if collection != nil {
		in.PullRequestsOpened = collection.TotalPullRequestContributions
		in.ReviewsReported = collection.TotalPullRequestReviewContributions
	}

	prs, prTotal := collection.PullRequests()
	in.PullRequestsReported = prTotal

	for _, pr := range prs {
		in.PullRequests = append(in.PullRequests, collab.PullRequest{Merged: pr.Merged})
	}

	authors, _ := collection.ReviewedAuthors()
	for _, author := range authors {
		in.Reviews = append(in.Reviews, collab.Review{Author: author})
	}

	closed, _ := collection.Issues()
	for _, c := range closed {
		in.Issues = append(in.Issues, collab.Issue{Closed: c})
	}

	return in
}

func (a *Assembler) completenessInput(
	payload upstream.YearPayload,
	collection *upstream.ContributionsCollection,
	primary, supplementary []languages.RepoContribution,
) completeness.Input {
	_, prTotal := collection.PullRequests()
	_, reviewTotal := collection.ReviewedAuthors()
	_, issueTotal := collection.Issues()

	// Deleted nodes still count as retrieved; they are not missing pages.
	prNodes, reviewNodes, issueNodes := collection.SampleSizes()

	in := completeness.Input{
		PullRequests:       completeness.Facet{Reported: prTotal, Retrieved: prNodes},
		Reviews:            completeness.Facet{Reported: reviewTotal, Retrieved: reviewNodes},
		Issues:             completeness.Facet{Reported: issueTotal, Retrieved: issueNodes},
		PageCap:            a.opts.PageCap,
		TotalContributions: collection.TotalContributions(),
		Recovered:          payload.SupplementaryCommits(),
		PrimaryRepos:       len(primary),
		SupplementaryRepos: newRepos(primary, supplementary),
	}

	if collection != nil {
		in.Restricted = collection.RestrictedContributionsCount
		// The repository listing has no total; the page cap is the only signal.
		in.Repositories = completeness.Facet{Retrieved: len(collection.CommitContributionsByRepository)}
	}

	return in
}

// newRepos counts supplementary repositories the primary listing did not
// already contain.
func newRepos(primary, supplementary []languages.RepoContribution) int {
	seen := make(map[string]struct{}, len(primary))
	for _, repo := range primary {
		seen[repo.RepoID] = struct{}{}
	}

	count := 0

	for _, repo := range supplementary {
		if _, dup := seen[repo.RepoID]; dup {
			continue
		}

		seen[repo.RepoID] = struct{}{}
		count++
	}

	return count
}

func peakMoments(rhythm calendar.Rhythm, total int) PeakMoments {
	peak := PeakMoments{
		FavoriteTimeOfDay:          FavoriteTimeOfDay,
		FavoriteDaysOfWeek:         rhythm.FavoriteWeekdays,
		WeekendCommits:             rhythm.WeekendCount,
		AverageCommitsPerActiveDay: stats.Ratio(total, rhythm.ActiveDays),
	}

	if rhythm.BusiestDay != nil {
		day := rhythm.BusiestDay.Date
		peak.BusiestDay = &BusiestDay{
			Date:          day,
			FormattedDate: textutil.OrdinalDate(day.Month, day.Day),
			Commits:       rhythm.BusiestDay.Count,
			Context:       calendar.PeakDayContext(day),
		}
	}

	return peak
}
