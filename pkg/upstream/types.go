// Package upstream models the already-fetched documents produced by the
// contribution fetch layer. Every nested field the remote API may omit is a
// pointer, and every accessor is nil-safe and returns a defaulted value, so
// consumers never have to assume presence.
package upstream

// ContributionsResponse is the contributions query response of the remote
// GraphQL API.
type ContributionsResponse struct {
	User *User `json:"user"`
}

// User is the account whose contributions were queried.
type User struct {
	Login                   string                   `json:"login"`
	Name                    *string                  `json:"name"`
	AvatarURL               string                   `json:"avatarUrl"`
	ContributionsCollection *ContributionsCollection `json:"contributionsCollection"`
}

// ContributionsCollection is the per-year contribution breakdown.
type ContributionsCollection struct {
	TotalCommitContributions            int `json:"totalCommitContributions"`
	TotalPullRequestContributions       int `json:"totalPullRequestContributions"`
	TotalPullRequestReviewContributions int `json:"totalPullRequestReviewContributions"`
	TotalIssueContributions             int `json:"totalIssueContributions"`
	TotalRepositoryContributions        int `json:"totalRepositoryContributions"`
	RestrictedContributionsCount        int `json:"restrictedContributionsCount"`

	ContributionCalendar            *ContributionCalendar  `json:"contributionCalendar"`
	CommitContributionsByRepository []*RepositoryCommits   `json:"commitContributionsByRepository"`
	PullRequestContributions        *PullRequestConnection `json:"pullRequestContributions"`
	PullRequestReviewContributions  *ReviewConnection      `json:"pullRequestReviewContributions"`
	IssueContributions              *IssueConnection       `json:"issueContributions"`
}

// ContributionCalendar is the day-by-day contribution grid.
type ContributionCalendar struct {
	TotalContributions int                 `json:"totalContributions"`
	Weeks              []*ContributionWeek `json:"weeks"`
}

// ContributionWeek is one column of the calendar grid.
type ContributionWeek struct {
	ContributionDays []*ContributionDay `json:"contributionDays"`
}

// ContributionDay is one calendar cell. Date is expected as YYYY-MM-DD but is
// not validated here.
type ContributionDay struct {
	Date              string `json:"date"`
	ContributionCount int    `json:"contributionCount"`
	ContributionLevel string `json:"contributionLevel,omitempty"`
}

// RepositoryCommits is the commit count of the user in one repository.
type RepositoryCommits struct {
	Repository    *Repository `json:"repository"`
	Contributions *Count      `json:"contributions"`
}

// Repository is a repository with its language breakdown.
type Repository struct {
	Name            string         `json:"name"`
	NameWithOwner   string         `json:"nameWithOwner"`
	PrimaryLanguage *LanguageNode  `json:"primaryLanguage"`
	Languages       *LanguageEdges `json:"languages"`
}

// LanguageEdges is the language connection of a repository.
type LanguageEdges struct {
	Edges     []*LanguageEdge `json:"edges"`
	TotalSize int64           `json:"totalSize"`
}

// LanguageEdge is the size of one language in a repository.
type LanguageEdge struct {
	Size int64         `json:"size"`
	Node *LanguageNode `json:"node"`
}

// LanguageNode names a language and its upstream color.
type LanguageNode struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

// Count wraps a total count.
type Count struct {
	TotalCount int `json:"totalCount"`
}

// PullRequestConnection is the sampled pull-request contributions.
type PullRequestConnection struct {
	TotalCount int                        `json:"totalCount"`
	Nodes      []*PullRequestContribution `json:"nodes"`
}

// PullRequestContribution is one opened pull request.
type PullRequestContribution struct {
	OccurredAt  string       `json:"occurredAt"`
	PullRequest *PullRequest `json:"pullRequest"`
}

// PullRequest is the pull request behind a contribution.
type PullRequest struct {
	Title  string  `json:"title"`
	Merged bool    `json:"merged"`
	Author *Author `json:"author"`
}

// Author is a pull-request author. It is null for deleted accounts.
type Author struct {
	Login string `json:"login"`
}

// ReviewConnection is the sampled review contributions.
type ReviewConnection struct {
	TotalCount int                   `json:"totalCount"`
	Nodes      []*ReviewContribution `json:"nodes"`
}

// ReviewContribution is one review of someone's pull request.
type ReviewContribution struct {
	OccurredAt  string       `json:"occurredAt"`
	PullRequest *PullRequest `json:"pullRequest"`
}

// IssueConnection is the sampled issue contributions.
type IssueConnection struct {
	TotalCount int                  `json:"totalCount"`
	Nodes      []*IssueContribution `json:"nodes"`
}

// IssueContribution is one opened issue.
type IssueContribution struct {
	OccurredAt string `json:"occurredAt"`
	Issue      *Issue `json:"issue"`
}

// Issue is the issue behind a contribution.
type Issue struct {
	Title    string  `json:"title"`
	ClosedAt *string `json:"closedAt"`
}

// Supplementary is the per-repository data gathered through the REST channel
// for repositories the GraphQL listing could not see.
type Supplementary struct {
	Repos        []SupplementaryRepo `json:"repos"         yaml:"repos"`
	TotalCommits int                 `json:"total_commits" yaml:"total_commits"`
}

// SupplementaryRepo is one repository of the supplementary channel. A repo
// the fetch layer failed on arrives zero-filled.
type SupplementaryRepo struct {
	Repo      string                  `json:"repo"      yaml:"repo"`
	Commits   int                     `json:"commits"   yaml:"commits"`
	Languages []SupplementaryLanguage `json:"languages" yaml:"languages"`
}

// SupplementaryLanguage is a language byte count from the REST channel.
type SupplementaryLanguage struct {
	Name  string `json:"name"  yaml:"name"`
	Bytes int64  `json:"bytes" yaml:"bytes"`
}

// YearPayload is everything the fetch layer gathered for one year.
type YearPayload struct {
	Year          int                   `json:"year"`
	Contributions ContributionsResponse `json:"contributions"`
	Supplementary *Supplementary        `json:"supplementary,omitempty"`
}
