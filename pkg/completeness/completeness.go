// Package completeness flags paginated facets that were capped upstream and
// estimates how much of a year's activity is visible.
package completeness

import (
	"github.com/Sumatoshi-tech/gitrewind/pkg/alg/stats"
	"github.com/Sumatoshi-tech/gitrewind/pkg/metrics"
)

// DefaultPageCap is the largest page the upstream API returns in one pass.
const DefaultPageCap = 100

// percentMax is the upper bound of an accessibility percentage.
const percentMax = 100

// Facet is one paginated collection: what upstream reported and what was
// actually retrieved. Reported is zero when upstream gives no total.
type Facet struct {
	Reported  int
	Retrieved int
}

// Truncated reports whether upstream claims more items than were retrieved.
func (f Facet) Truncated() bool {
	return f.Reported > f.Retrieved
}

// Input gathers the facets and contribution counts of one year.
type Input struct {
	PullRequests Facet
	Reviews      Facet
	Issues       Facet
	Repositories Facet

	// PageCap is the fixed page size; zero uses DefaultPageCap.
	PageCap int

	TotalContributions int
	// Restricted is the reported number of contributions hidden from the viewer.
	Restricted int
	// Recovered is how many restricted contributions the supplementary
	// channel made visible again.
	Recovered int

	PrimaryRepos       int
	SupplementaryRepos int
}

// Truncation holds one flag per paginated facet.
type Truncation struct {
	PullRequests       bool `json:"pull_requests"        yaml:"pull_requests"`
	PullRequestReviews bool `json:"pull_request_reviews" yaml:"pull_request_reviews"`
	Issues             bool `json:"issues"               yaml:"issues"`
	Repositories       bool `json:"repositories"         yaml:"repositories"`
}

// Any reports whether at least one facet was truncated.
func (t Truncation) Any() bool {
	return t.PullRequests || t.PullRequestReviews || t.Issues || t.Repositories
}

// DataCompleteness is the completeness side of a yearly summary.
type DataCompleteness struct {
	RestrictedContributions int        `json:"restricted_contributions" yaml:"restricted_contributions"`
	PercentageAccessible    int        `json:"percentage_accessible"    yaml:"percentage_accessible"`
	ReposAnalyzed           int        `json:"repos_analyzed"           yaml:"repos_analyzed"`
	Truncation              Truncation `json:"truncation"               yaml:"truncation"`
}

// Detect computes the truncation flags and the accessible share. A repository
// listing that reaches the page cap is treated as truncated even when
// upstream reports no total.
func Detect(in Input) DataCompleteness {
	pageCap := in.PageCap
	if pageCap <= 0 {
		pageCap = DefaultPageCap
	}

	stillInaccessible := max(0, in.Restricted-in.Recovered)
	accessible := in.TotalContributions - stillInaccessible

	return DataCompleteness{
		RestrictedContributions: stillInaccessible,
		PercentageAccessible:    stats.Clamp(stats.Percent(accessible, in.TotalContributions, percentMax), 0, percentMax),
		ReposAnalyzed:           in.PrimaryRepos + in.SupplementaryRepos,
		Truncation: Truncation{
			PullRequests:       in.PullRequests.Truncated(),
			PullRequestReviews: in.Reviews.Truncated(),
			Issues:             in.Issues.Truncated(),
			Repositories:       in.Repositories.Truncated() || in.Repositories.Retrieved >= pageCap,
		},
	}
}

// CompletenessMetric computes the completeness metadata of a year.
type CompletenessMetric struct {
	metrics.MetricMeta
}

// NewCompletenessMetric creates the completeness metric.
func NewCompletenessMetric() *CompletenessMetric {
	return &CompletenessMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        "data_completeness",
			MetricDisplayName: "Data Completeness",
			MetricDescription: "Share of contributions visible after recovering restricted activity, plus a " +
				"truncation flag for each paginated facet. A repository listing at the page cap counts as truncated.",
			MetricType: metrics.TypeAggregate,
		},
	}
}

// Compute runs the detector.
func (m *CompletenessMetric) Compute(input Input) DataCompleteness {
	return Detect(input)
}
