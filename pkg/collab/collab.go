// Package collab derives pull-request, review and collaborator statistics
// from the sampled contribution events of a year.
package collab

import (
	"slices"

	"github.com/Sumatoshi-tech/gitrewind/pkg/alg/stats"
	"github.com/Sumatoshi-tech/gitrewind/pkg/identity"
	"github.com/Sumatoshi-tech/gitrewind/pkg/metrics"
)

// TopCollaboratorsLimit is the number of collaborators reported.
const TopCollaboratorsLimit = 5

// Review style thresholds on the reviewed/opened ratio.
const (
	ThoroughRatio = 1.5
	QuickRatio    = 0.5
)

// ReviewStyle classifies how much a user reviews relative to how much they open.
type ReviewStyle string

// Review styles.
const (
	StyleThorough ReviewStyle = "thorough"
	StyleQuick    ReviewStyle = "quick"
	StyleBalanced ReviewStyle = "balanced"
)

// PullRequest is one sampled pull-request contribution.
type PullRequest struct {
	Merged bool
}

// Review is one sampled review contribution. Author is the login of the
// author of the reviewed pull request, empty when the account is gone.
type Review struct {
	Author string
}

// Issue is one sampled issue contribution.
type Issue struct {
	Closed bool
}

// Input holds the reported totals and the samples actually retrieved.
type Input struct {
	// Viewer is the login whose year is summarized; it never counts as a collaborator.
	Viewer string

	// PullRequestsOpened is the reported number of opened pull requests.
	PullRequestsOpened int
	// PullRequestsReported is the total count of the pull-request sample
	// connection. Zero falls back to PullRequestsOpened.
	PullRequestsReported int
	PullRequests         []PullRequest

	// ReviewsReported is the reported number of review contributions.
	ReviewsReported int
	Reviews         []Review

	Issues []Issue
}

// Tally is a collaborator and the number of their pull requests reviewed.
type Tally struct {
	Username     string `json:"username"     yaml:"username"`
	Interactions int    `json:"interactions" yaml:"interactions"`
}

// Collaboration is the collaboration side of a yearly summary.
type Collaboration struct {
	PullRequestsOpened     int         `json:"pull_requests_opened"      yaml:"pull_requests_opened"`
	PullRequestsMerged     int         `json:"pull_requests_merged"      yaml:"pull_requests_merged"`
	PullRequestsReviewed   int         `json:"pull_requests_reviewed"    yaml:"pull_requests_reviewed"`
	IssuesClosed           int         `json:"issues_closed"             yaml:"issues_closed"`
	UniqueCollaborators    int         `json:"unique_collaborators"      yaml:"unique_collaborators"`
	TopCollaborators       []Tally     `json:"top_collaborators"         yaml:"top_collaborators"`
	ReviewRatio            float64     `json:"review_ratio"              yaml:"review_ratio"`
	ReviewStyle            ReviewStyle `json:"review_style"              yaml:"review_style"`
	IsMergeRateApproximate bool        `json:"is_merge_rate_approximate" yaml:"is_merge_rate_approximate"`
}

// ClassifyReviewStyle maps a reviewed/opened ratio to a style.
func ClassifyReviewStyle(ratio float64) ReviewStyle {
	switch {
	case ratio > ThoroughRatio:
		return StyleThorough
	case ratio < QuickRatio:
		return StyleQuick
	default:
		return StyleBalanced
	}
}

// Aggregate computes the collaboration statistics. Merged pull requests are
// counted from the sample; when the reported total exceeds the sample the
// merge count is flagged approximate.
func Aggregate(in Input) Collaboration {
	result := Collaboration{
		PullRequestsOpened:   in.PullRequestsOpened,
		PullRequestsReviewed: in.ReviewsReported,
	}

	for _, pr := range in.PullRequests {
		if pr.Merged {
			result.PullRequestsMerged++
		}
	}

	reported := in.PullRequestsReported
	if reported == 0 {
		reported = in.PullRequestsOpened
	}

	result.IsMergeRateApproximate = reported > len(in.PullRequests)

	for _, issue := range in.Issues {
		if issue.Closed {
			result.IssuesClosed++
		}
	}

	tallies := tallyReviewers(in.Viewer, in.Reviews)
	result.UniqueCollaborators = len(tallies)

	slices.SortStableFunc(tallies, func(a, b Tally) int { return b.Interactions - a.Interactions })

	if len(tallies) > TopCollaboratorsLimit {
		tallies = tallies[:TopCollaboratorsLimit]
	}

	result.TopCollaborators = tallies
	result.ReviewRatio = stats.Ratio(result.PullRequestsReviewed, result.PullRequestsOpened)
	result.ReviewStyle = ClassifyReviewStyle(result.ReviewRatio)

	return result
}

// tallyReviewers counts reviews per pull-request author in first-seen order,
// skipping the viewer, deleted accounts and bots.
func tallyReviewers(viewer string, reviews []Review) []Tally {
	index := make(map[string]int)
	tallies := make([]Tally, 0)

	for _, review := range reviews {
		author := review.Author
		if author == "" || identity.SameLogin(author, viewer) || identity.IsBot(author) {
			continue
		}

		idx, ok := index[author]
		if !ok {
			idx = len(tallies)
			index[author] = idx
			tallies = append(tallies, Tally{Username: author})
		}

		tallies[idx].Interactions++
	}

	return tallies
}

// CollaborationMetric computes the collaboration statistics of a year.
type CollaborationMetric struct {
	metrics.MetricMeta
}

// NewCollaborationMetric creates the collaboration metric.
func NewCollaborationMetric() *CollaborationMetric {
	return &CollaborationMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        "collaboration",
			MetricDisplayName: "Collaboration",
			MetricDescription: "Pull requests opened, merged and reviewed, issues closed, and the people whose " +
				"pull requests were reviewed (automated accounts excluded). Merge counts come from the fetched " +
				"sample and are flagged approximate when the sample was truncated.",
			MetricType: metrics.TypeAggregate,
		},
	}
}

// Compute aggregates the collaboration input.
func (m *CollaborationMetric) Compute(input Input) Collaboration {
	return Aggregate(input)
}

// ReviewStyleMetric classifies the reviewed/opened ratio.
type ReviewStyleMetric struct {
	metrics.MetricMeta
}

// NewReviewStyleMetric creates the review style metric.
func NewReviewStyleMetric() *ReviewStyleMetric {
	return &ReviewStyleMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        "review_style",
			MetricDisplayName: "Review Style",
			MetricDescription: "Reviews per opened pull request: above 1.5 is thorough, below 0.5 is quick, " +
				"anything else is balanced. Zero opened pull requests gives a ratio of 0.",
			MetricType: metrics.TypeClassification,
		},
	}
}

// Compute classifies a ratio.
func (m *ReviewStyleMetric) Compute(ratio float64) ReviewStyle {
	return ClassifyReviewStyle(ratio)
}
