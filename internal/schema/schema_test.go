package schema_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/gitrewind/internal/schema"
	"github.com/Sumatoshi-tech/gitrewind/pkg/upstream"
	"github.com/Sumatoshi-tech/gitrewind/pkg/yearstats"
)

const (
	testPayload = "payload_2024.json"
	testLogin   = "octocat"
	testYear    = 2024
)

func assembleFixture(t *testing.T) yearstats.YearSummary {
	t.Helper()

	f, err := os.Open(filepath.Join("..", "..", "pkg", "upstream", "testdata", testPayload))
	require.NoError(t, err)

	t.Cleanup(func() { _ = f.Close() })

	payload, err := upstream.Decode(f)
	require.NoError(t, err)

	return yearstats.Assemble(payload, yearstats.Options{})
}

func TestDecode_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	summary := assembleFixture(t)

	data, err := json.Marshal(summary)
	require.NoError(t, err)

	decoded, err := schema.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, testLogin, decoded.User.Username)
	assert.Equal(t, testYear, decoded.Year)
	assert.Equal(t, summary.TotalContributions, decoded.TotalContributions)
	assert.Equal(t, summary.Rhythm.Days, decoded.Rhythm.Days)
	assert.Equal(t, summary.Craft.PrimaryLanguage, decoded.Craft.PrimaryLanguage)
	assert.Equal(t, summary.Collaboration, decoded.Collaboration)
	assert.Equal(t, summary.PeakMoments, decoded.PeakMoments)
	assert.Equal(t, summary.ActivityLevel, decoded.ActivityLevel)
}

func TestDecode_YAMLRoundTrip(t *testing.T) {
	t.Parallel()

	summary := assembleFixture(t)

	data, err := yaml.Marshal(summary)
	require.NoError(t, err)
	assert.False(t, schema.IsJSON(data))

	decoded, err := schema.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, testLogin, decoded.User.Username)
	assert.Equal(t, summary.Rhythm.LongestStreak, decoded.Rhythm.LongestStreak)
	assert.Equal(t, summary.Rhythm.Days, decoded.Rhythm.Days)
	assert.Equal(t, summary.DataCompleteness, decoded.DataCompleteness)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantField string
	}{
		{name: "missing_rhythm", input: minimalSummary(`"rhythm": null`), wantField: "rhythm"},
		{name: "negative_total", input: minimalSummary(`"total_contributions": -4`), wantField: "total_contributions"},
		{name: "bad_activity_level", input: minimalSummary(`"activity_level": "legendary"`), wantField: "activity_level"},
		{name: "empty_username", input: minimalSummary(`"user": {"username": ""}`), wantField: "user.username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := schema.Decode([]byte(tt.input))
			require.ErrorIs(t, err, schema.ErrInvalidSummary)

			var verr *schema.ValidationError

			require.ErrorAs(t, err, &verr)

			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}

			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestDecode_Minimal(t *testing.T) {
	t.Parallel()

	summary, err := schema.Decode([]byte(minimalSummary()))
	require.NoError(t, err)

	assert.Equal(t, "hubot", summary.User.Username)
	assert.Equal(t, 2023, summary.Year)
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	_, err := schema.Decode([]byte("  \n"))
	require.ErrorIs(t, err, schema.ErrEmptyDocument)
}

func TestDecode_Malformed(t *testing.T) {
	t.Parallel()

	_, err := schema.Decode([]byte(`{"user": `))
	require.Error(t, err)
	require.NotErrorIs(t, err, schema.ErrInvalidSummary)
}

func TestRaw_IsValidJSON(t *testing.T) {
	t.Parallel()

	var doc map[string]any

	require.NoError(t, json.Unmarshal(schema.Raw(), &doc))
	assert.Equal(t, "YearSummary", doc["title"])
}

// minimalSummary returns the smallest valid document, with each override
// replacing the member of the same name.
func minimalSummary(overrides ...string) string {
	members := map[string]string{
		"user":                `"user": {"username": "hubot"}`,
		"year":                `"year": 2023`,
		"total_contributions": `"total_contributions": 0`,
		"data_completeness":   `"data_completeness": {"percentage_accessible": 100, "truncation": {}}`,
		"rhythm":              `"rhythm": {"active_days": 0, "total_days": 0, "longest_streak": 0, "current_streak": 0}`,
		"craft":               `"craft": {"languages": []}`,
		"collaboration":       `"collaboration": {}`,
		"peak_moments":        `"peak_moments": {"busiest_day": null}`,
	}
	order := []string{
		"user", "year", "total_contributions", "data_completeness",
		"rhythm", "craft", "collaboration", "peak_moments",
	}

	for _, o := range overrides {
		var override map[string]json.RawMessage

		if json.Unmarshal([]byte("{"+o+"}"), &override) != nil {
			continue
		}

		for name := range override {
			if _, known := members[name]; !known {
				order = append(order, name)
			}

			members[name] = o
		}
	}

	out := "{"

	for i, name := range order {
		if i > 0 {
			out += ","
		}

		out += members[name]
	}

	return out + "}"
}
