package activity

import (
	"fmt"

	"github.com/Sumatoshi-tech/gitrewind/pkg/textutil"
)

// Empty-state descriptions. They are neutral at every level.
const (
	CraftEmpty         = "No code contributions found for this period."
	CollaborationEmpty = "No collaboration data found for this period."
	PeakMomentsEmpty   = "No peak activity data found for this period."
)

// RhythmSubtitle introduces the rhythm chapter.
func RhythmSubtitle(l Level) string {
	if l.IsLow() {
		return "Your contribution activity for this period."
	}

	return "Code is a practice. These are the days you showed up."
}

// RhythmActiveContext describes the share of active days. It returns false
// for a year without activity.
func RhythmActiveContext(l Level, consistencyPercent int) (string, bool) {
	switch l {
	case LevelZero:
		return "", false
	case LevelSparse:
		return fmt.Sprintf("Active on %d%% of the year.", consistencyPercent), true
	default:
		return fmt.Sprintf("Active on %d%% of the year. Consistency compounds.", consistencyPercent), true
	}
}

// RhythmTransition leads from rhythm to craft.
func RhythmTransition(l Level) (string, bool) {
	return motivational(l, "Showing up is just the start. Let's see what you built.")
}

// CraftSubtitle introduces the craft chapter.
func CraftSubtitle(l Level) string {
	if l.IsLow() {
		return "The languages used in your contributions."
	}

	return "The tools you reached for. The languages that shaped your thinking this year."
}

// CraftLanguageContext describes the primary language.
func CraftLanguageContext(l Level, language string) string {
	if l.IsLow() {
		return language + " was your most used language."
	}

	return language + " was your primary language this year, the foundation of your work."
}

// CraftTransition leads from craft to collaboration.
func CraftTransition(l Level) (string, bool) {
	return motivational(l, "That's what you built. But you didn't build it alone.")
}

// CollaborationSubtitle introduces the collaboration chapter.
func CollaborationSubtitle(l Level) string {
	if l.IsLow() {
		return "Your pull request and collaboration activity."
	}

	return "Code is a conversation. These are the people and PRs that shaped your year."
}

// CollaborationMergedContext describes the merged pull requests.
func CollaborationMergedContext(l Level, merged int) string {
	base := fmt.Sprintf("You shipped %d pull %s this year.", merged, textutil.Pluralize(merged, "request", "requests"))
	if l.IsLow() {
		return base
	}

	return base + " Every merge is progress."
}

// CollaborationTransition leads from collaboration to peak moments.
func CollaborationTransition(l Level) (string, bool) {
	return motivational(l, "Now let's look at when you did your best work.")
}

// PeakMomentsSubtitle introduces the peak moments chapter.
func PeakMomentsSubtitle(l Level) string {
	if l.IsLow() {
		return "Your most active periods."
	}

	return "The days you were in flow. When everything clicked."
}

// PeakMomentsTransition leads from peak moments to the epilogue.
func PeakMomentsTransition(l Level) (string, bool) {
	return motivational(l, "That was your year. Let's bring it all together.")
}

// EpilogueMessage is the closing headline.
func EpilogueMessage(l Level) string {
	if l.IsLow() {
		return "Your activity for this period."
	}

	return "This wasn't about the numbers."
}

// EpilogueContext is the closing line under the headline. It returns false
// for a year without activity.
func EpilogueContext(l Level, activeDays int) (string, bool) {
	switch l {
	case LevelZero:
		return "", false
	case LevelSparse:
		return fmt.Sprintf("You were active on %d %s this year.", activeDays, textutil.Pluralize(activeDays, "day", "days")), true
	default:
		return fmt.Sprintf("It was about showing up, %d times this year. Every commit moved something forward.", activeDays), true
	}
}

func motivational(l Level, text string) (string, bool) {
	if !l.Motivational() {
		return "", false
	}

	return text, true
}
