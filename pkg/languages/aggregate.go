// Package languages merges byte-weighted language data from the primary and
// supplementary repository listings into a ranked distribution.
package languages

import (
	"slices"

	"github.com/Sumatoshi-tech/gitrewind/pkg/alg/stats"
	"github.com/Sumatoshi-tech/gitrewind/pkg/metrics"
)

const (
	// TopN is the number of languages kept in the distribution.
	TopN = 6

	// Unknown is the primary language reported when no language bytes exist.
	Unknown = "Unknown"
)

// LanguageBytes is the byte count of one language in one repository.
// Color is the upstream display color and may be empty.
type LanguageBytes struct {
	Name  string `json:"name"            yaml:"name"`
	Bytes int64  `json:"bytes"           yaml:"bytes"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// RepoContribution is one repository a user committed to during the year.
type RepoContribution struct {
	RepoID      string          `json:"repo_id"      yaml:"repo_id"`
	CommitCount int             `json:"commit_count" yaml:"commit_count"`
	Languages   []LanguageBytes `json:"languages"    yaml:"languages"`
}

// Share is one entry of the language distribution.
type Share struct {
	Name       string `json:"name"       yaml:"name"`
	Bytes      int64  `json:"-"          yaml:"-"`
	Percentage int    `json:"percentage" yaml:"percentage"`
	Color      string `json:"color"      yaml:"color"`
}

// Craft is the language and repository side of a yearly summary.
type Craft struct {
	PrimaryLanguage           string  `json:"primary_language"            yaml:"primary_language"`
	PrimaryLanguagePercentage int     `json:"primary_language_percentage" yaml:"primary_language_percentage"`
	Languages                 []Share `json:"languages"                   yaml:"languages"`
	TopRepository             *string `json:"top_repository"              yaml:"top_repository"`
	TopRepositoryCommits      int     `json:"top_repository_commits"      yaml:"top_repository_commits"`
	TotalLanguages            int     `json:"total_languages"             yaml:"total_languages"`
	TotalBytes                int64   `json:"total_bytes"                 yaml:"total_bytes"`
}

// Names returns the language names of the distribution in rank order.
func (c Craft) Names() []string {
	names := make([]string, 0, len(c.Languages))
	for _, share := range c.Languages {
		names = append(names, share.Name)
	}

	return names
}

// accumulator keeps first-seen order so ties resolve deterministically.
type accumulator struct {
	index  map[string]int
	shares []Share
}

func (a *accumulator) add(lang LanguageBytes) {
	if lang.Name == "" || lang.Bytes <= 0 {
		return
	}

	idx, ok := a.index[lang.Name]
	if !ok {
		idx = len(a.shares)
		a.index[lang.Name] = idx
		a.shares = append(a.shares, Share{Name: lang.Name, Color: Color(lang.Name, lang.Color)})
	}

	a.shares[idx].Bytes += lang.Bytes
}

// Aggregate merges the two repository channels. A supplementary repository
// whose RepoID already appeared is skipped so that its bytes and commits are
// not counted twice. Languages are ranked by raw bytes, never by the rounded
// percentage, so a long tail of tiny languages cannot empty the distribution.
func Aggregate(primary, supplementary []RepoContribution) Craft {
	acc := &accumulator{index: make(map[string]int)}
	seen := make(map[string]struct{}, len(primary)+len(supplementary))

	var (
		craft      Craft
		topCommits int
	)

	consume := func(repo RepoContribution) {
		if repo.RepoID != "" {
			if _, dup := seen[repo.RepoID]; dup {
				return
			}

			seen[repo.RepoID] = struct{}{}
		}

		if repo.CommitCount > topCommits {
			topCommits = repo.CommitCount
			id := repo.RepoID
			craft.TopRepository = &id
		}

		for _, lang := range repo.Languages {
			acc.add(lang)
		}
	}

	for _, repo := range primary {
		consume(repo)
	}

	for _, repo := range supplementary {
		consume(repo)
	}

	craft.TopRepositoryCommits = topCommits
	craft.TotalLanguages = len(acc.shares)

	for _, share := range acc.shares {
		craft.TotalBytes += share.Bytes
	}

	ranked := make([]Share, len(acc.shares))
	copy(ranked, acc.shares)
	slices.SortStableFunc(ranked, func(a, b Share) int {
		switch {
		case a.Bytes > b.Bytes:
			return -1
		case a.Bytes < b.Bytes:
			return 1
		default:
			return 0
		}
	})

	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}

	for i := range ranked {
		ranked[i].Percentage = stats.Percent(ranked[i].Bytes, craft.TotalBytes, 0)
	}

	craft.Languages = ranked
	craft.PrimaryLanguage = Unknown

	if len(ranked) > 0 {
		craft.PrimaryLanguage = ranked[0].Name
		craft.PrimaryLanguagePercentage = ranked[0].Percentage
	}

	return craft
}

// Input is the pair of repository channels consumed by [LanguagesMetric].
type Input struct {
	Primary       []RepoContribution
	Supplementary []RepoContribution
}

// LanguagesMetric computes the language distribution of a year.
type LanguagesMetric struct {
	metrics.MetricMeta
}

// NewLanguagesMetric creates the languages metric.
func NewLanguagesMetric() *LanguagesMetric {
	return &LanguagesMetric{
		MetricMeta: metrics.MetricMeta{
			MetricName:        "languages",
			MetricDisplayName: "Language Distribution",
			MetricDescription: "Byte-weighted share of each language across committed repositories, top 6 by raw bytes. " +
				"Also reports the repository with the most commits.",
			MetricType: metrics.TypeDistribution,
		},
	}
}

// Compute aggregates both repository channels.
func (m *LanguagesMetric) Compute(input Input) Craft {
	return Aggregate(input.Primary, input.Supplementary)
}
