package upstream

// Collection returns the contributions collection, or nil.
func (u *User) Collection() *ContributionsCollection {
	if u == nil {
		return nil
	}

	return u.ContributionsCollection
}

// DisplayName returns the user's name, or an empty string.
func (u *User) DisplayName() string {
	if u == nil || u.Name == nil {
		return ""
	}

	return *u.Name
}

// TotalContributions returns the calendar total, or 0.
func (c *ContributionsCollection) TotalContributions() int {
	if c == nil || c.ContributionCalendar == nil {
		return 0
	}

	return c.ContributionCalendar.TotalContributions
}

// Days flattens the calendar weeks into days, skipping null cells.
func (c *ContributionsCollection) Days() []ContributionDay {
	if c == nil || c.ContributionCalendar == nil {
		return nil
	}

	var days []ContributionDay

	for _, week := range c.ContributionCalendar.Weeks {
		if week == nil {
			continue
		}

		for _, day := range week.ContributionDays {
			if day != nil {
				days = append(days, *day)
			}
		}
	}

	return days
}

// Repositories returns the commit listing entries that carry both a
// repository and a contribution count.
func (c *ContributionsCollection) Repositories() []RepositoryCommits {
	if c == nil {
		return nil
	}

	repos := make([]RepositoryCommits, 0, len(c.CommitContributionsByRepository))

	for _, entry := range c.CommitContributionsByRepository {
		if entry == nil || entry.Repository == nil || entry.Contributions == nil {
			continue
		}

		repos = append(repos, *entry)
	}

	return repos
}

// PullRequests returns the sampled pull requests and the connection total.
func (c *ContributionsCollection) PullRequests() (sample []PullRequest, total int) {
	if c == nil || c.PullRequestContributions == nil {
		return nil, 0
	}

	for _, node := range c.PullRequestContributions.Nodes {
		if node != nil && node.PullRequest != nil {
			sample = append(sample, *node.PullRequest)
		}
	}

	return sample, c.PullRequestContributions.TotalCount
}

// ReviewedAuthors returns the author login of each sampled reviewed pull
// request, empty for deleted accounts, and the connection total.
func (c *ContributionsCollection) ReviewedAuthors() (authors []string, total int) {
	if c == nil || c.PullRequestReviewContributions == nil {
		return nil, 0
	}

	for _, node := range c.PullRequestReviewContributions.Nodes {
		if node == nil || node.PullRequest == nil {
			continue
		}

		authors = append(authors, node.PullRequest.Author.GetLogin())
	}

	return authors, c.PullRequestReviewContributions.TotalCount
}

// Issues returns whether each sampled issue is closed, and the connection total.
func (c *ContributionsCollection) Issues() (closed []bool, total int) {
	if c == nil || c.IssueContributions == nil {
		return nil, 0
	}

	for _, node := range c.IssueContributions.Nodes {
		if node != nil && node.Issue != nil {
			closed = append(closed, node.Issue.ClosedAt != nil)
		}
	}

	return closed, c.IssueContributions.TotalCount
}

// SampleSizes returns the raw node counts of the pull request, review and
// issue connections, including nodes whose pull request or issue was deleted.
func (c *ContributionsCollection) SampleSizes() (prs, reviews, issues int) {
	if c == nil {
		return 0, 0, 0
	}

	if c.PullRequestContributions != nil {
		prs = len(c.PullRequestContributions.Nodes)
	}

	if c.PullRequestReviewContributions != nil {
		reviews = len(c.PullRequestReviewContributions.Nodes)
	}

	if c.IssueContributions != nil {
		issues = len(c.IssueContributions.Nodes)
	}

	return prs, reviews, issues
}

// GetLogin returns the login, or an empty string for a deleted account.
func (a *Author) GetLogin() string {
	if a == nil {
		return ""
	}

	return a.Login
}

// CommitCount returns the commit total, or 0.
func (r RepositoryCommits) CommitCount() int {
	if r.Contributions == nil {
		return 0
	}

	return r.Contributions.TotalCount
}

// ID returns the owner-qualified repository name.
func (r RepositoryCommits) ID() string {
	if r.Repository == nil {
		return ""
	}

	return r.Repository.NameWithOwner
}

// LanguageEdges returns the non-null language edges of the repository.
func (r RepositoryCommits) LanguageEdges() []LanguageEdge {
	if r.Repository == nil || r.Repository.Languages == nil {
		return nil
	}

	edges := make([]LanguageEdge, 0, len(r.Repository.Languages.Edges))

	for _, edge := range r.Repository.Languages.Edges {
		if edge == nil || edge.Node == nil || edge.Node.Name == "" {
			continue
		}

		edges = append(edges, *edge)
	}

	return edges
}

// ColorOrEmpty returns the upstream color, or an empty string.
func (n *LanguageNode) ColorOrEmpty() string {
	if n == nil || n.Color == nil {
		return ""
	}

	return *n.Color
}

// SupplementaryRepos returns the supplementary repositories, or nil.
func (p YearPayload) SupplementaryRepos() []SupplementaryRepo {
	if p.Supplementary == nil {
		return nil
	}

	return p.Supplementary.Repos
}

// SupplementaryCommits returns the commit count recovered by the
// supplementary channel, or 0.
func (p YearPayload) SupplementaryCommits() int {
	if p.Supplementary == nil {
		return 0
	}

	return p.Supplementary.TotalCommits
}
