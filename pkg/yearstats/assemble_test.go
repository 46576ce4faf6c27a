package yearstats_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitrewind/pkg/activity"
	"github.com/Sumatoshi-tech/gitrewind/pkg/collab"
	"github.com/Sumatoshi-tech/gitrewind/pkg/metrics"
	"github.com/Sumatoshi-tech/gitrewind/pkg/upstream"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

const testFixture = "../upstream/testdata/payload_2024.json"

func loadPayload(t *testing.T) upstream.YearPayload {
	t.Helper()

	f, err := os.Open(filepath.FromSlash(testFixture))
	require.NoError(t, err)

	t.Cleanup(func() { _ = f.Close() })

	payload, err := upstream.Decode(f)
	require.NoError(t, err)

	return payload
}

func TestAssemble_Fixture(t *testing.T) {
	t.Parallel()

	summary := yearstats.Assemble(loadPayload(t), yearstats.Options{})

	assert.Equal(t, yearstats.User{
		Username:  "octocat",
		Name:      "The Octocat",
		AvatarURL: "https://avatars.example.com/u/583231",
	}, summary.User)
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, 20, summary.TotalContributions)
	assert.Equal(t, activity.LevelTypical, summary.ActivityLevel)
}

func TestAssemble_Rhythm(t *testing.T) {
	t.Parallel()

	rhythm := yearstats.Assemble(loadPayload(t), yearstats.Options{}).Rhythm

	assert.Equal(t, 4, rhythm.TotalDays)
	assert.Equal(t, 3, rhythm.ActiveDays)
	assert.Equal(t, 3, rhythm.LongestStreak)
	assert.Zero(t, rhythm.CurrentStreak)
	assert.Equal(t, "January", rhythm.BusiestMonth)
}

func TestAssemble_Craft(t *testing.T) {
	t.Parallel()

	craft := yearstats.Assemble(loadPayload(t), yearstats.Options{}).Craft

	assert.Equal(t, "Go", craft.PrimaryLanguage)
	assert.Equal(t, 70, craft.PrimaryLanguagePercentage)
	assert.Equal(t, []string{"Go", "Rust", "Shell"}, craft.Names())
	assert.Equal(t, int64(10000), craft.TotalBytes)

	require.NotNil(t, craft.TopRepository)
	assert.Equal(t, "octocat/private-tool", *craft.TopRepository)
	assert.Equal(t, 10, craft.TopRepositoryCommits)
}

func TestAssemble_Collaboration(t *testing.T) {
	t.Parallel()

	c := yearstats.Assemble(loadPayload(t), yearstats.Options{}).Collaboration

	assert.Equal(t, 3, c.PullRequestsOpened)
	assert.Equal(t, 1, c.PullRequestsMerged)
	assert.True(t, c.IsMergeRateApproximate)
	assert.Equal(t, 5, c.PullRequestsReviewed)
	assert.Equal(t, 1, c.IssuesClosed)
	assert.Equal(t, 2, c.UniqueCollaborators)
	assert.Equal(t, []collab.Tally{{Username: "hubot", Interactions: 2}, {Username: "monalisa", Interactions: 1}},
		c.TopCollaborators)
	assert.Equal(t, collab.StyleThorough, c.ReviewStyle)
}

func TestAssemble_Completeness(t *testing.T) {
	t.Parallel()

	dc := yearstats.Assemble(loadPayload(t), yearstats.Options{}).DataCompleteness

	assert.Equal(t, 1, dc.RestrictedContributions)
	assert.Equal(t, 95, dc.PercentageAccessible)
	assert.Equal(t, 4, dc.ReposAnalyzed)
	assert.False(t, dc.Truncation.PullRequests)
	assert.False(t, dc.Truncation.PullRequestReviews)
	assert.False(t, dc.Truncation.Issues)
	assert.False(t, dc.Truncation.Repositories)
}

func TestAssemble_DeletedNodesAreRetrieved(t *testing.T) {
	t.Parallel()

	const deletedSample = `{"year": 2024, "contributions": {"user": {"login": "hubot",
		"contributionsCollection": {
			"pullRequestContributions": {"totalCount": 4, "nodes": [
				{"pullRequest": {"title": "Kept", "merged": true}},
				{"pullRequest": null},
				null
			]},
			"pullRequestReviewContributions": {"totalCount": 2, "nodes": [
				{"pullRequest": null},
				{"pullRequest": {"title": "Kept", "author": {"login": "monalisa"}}}
			]}
		}}}}`

	payload, err := upstream.Decode(strings.NewReader(deletedSample))
	require.NoError(t, err)

	dc := yearstats.Assemble(payload, yearstats.Options{}).DataCompleteness

	assert.True(t, dc.Truncation.PullRequests)
	assert.False(t, dc.Truncation.PullRequestReviews)
}

func TestAssemble_PageCapOption(t *testing.T) {
	t.Parallel()

	dc := yearstats.Assemble(loadPayload(t), yearstats.Options{PageCap: 3}).DataCompleteness

	assert.True(t, dc.Truncation.Repositories)
}

func TestAssemble_PeakMoments(t *testing.T) {
	t.Parallel()

	peak := yearstats.Assemble(loadPayload(t), yearstats.Options{}).PeakMoments

	require.NotNil(t, peak.BusiestDay)
	assert.Equal(t, "2024-01-11", peak.BusiestDay.Date.String())
	assert.Equal(t, "January 11th", peak.BusiestDay.FormattedDate)
	assert.Equal(t, 8, peak.BusiestDay.Commits)
	assert.Equal(t, "New year momentum", peak.BusiestDay.Context)
	assert.Equal(t, yearstats.FavoriteTimeOfDay, peak.FavoriteTimeOfDay)
	assert.Equal(t, []string{"Thursday"}, peak.FavoriteDaysOfWeek)
	assert.Zero(t, peak.LateNightCommits)
	assert.Zero(t, peak.WeekendCommits)
	assert.InDelta(t, 20.0/3.0, peak.AverageCommitsPerActiveDay, 1e-9)
}

func TestAssemble_EmptyUser(t *testing.T) {
	t.Parallel()

	payload := upstream.YearPayload{
		Year:          2023,
		Contributions: upstream.ContributionsResponse{User: &upstream.User{Login: "ghost"}},
	}

	summary := yearstats.Assemble(payload, yearstats.Options{})

	assert.Equal(t, "ghost", summary.User.Username)
	assert.Zero(t, summary.TotalContributions)
	assert.Nil(t, summary.PeakMoments.BusiestDay)
	assert.Empty(t, summary.PeakMoments.FavoriteDaysOfWeek)
	assert.Zero(t, summary.PeakMoments.AverageCommitsPerActiveDay)
	assert.Equal(t, "Unknown", summary.Craft.PrimaryLanguage)
	assert.Nil(t, summary.Craft.TopRepository)
	assert.Equal(t, 100, summary.DataCompleteness.PercentageAccessible)
	assert.Equal(t, activity.LevelZero, summary.ActivityLevel)
}

func TestRegisterMetrics(t *testing.T) {
	t.Parallel()

	reg := metrics.NewRegistry()
	yearstats.RegisterMetrics(reg)

	assert.Equal(t, []string{
		"activity_level", "collaboration", "data_completeness", "languages", "review_style", "rhythm",
	}, reg.Names())
}
