// Package identity classifies account logins.
package identity

import "strings"

// BotPatterns are the lowercase signatures of automated accounts.
var BotPatterns = []string{
	"[bot]",
	"dependabot",
	"renovate",
	"github-actions",
	"codecov",
}

// IsBot reports whether login belongs to an automated account. Matching is a
// case-insensitive substring test against [BotPatterns].
func IsBot(login string) bool {
	lower := strings.ToLower(login)

	for _, pattern := range BotPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}

	return false
}

// SameLogin reports whether two logins name the same account. Logins are
// case-insensitive upstream.
func SameLogin(a, b string) bool {
	return strings.EqualFold(a, b)
}
