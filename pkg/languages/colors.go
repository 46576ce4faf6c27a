package languages

import (
	"strings"

	"github.com/src-d/enry/v2"
)

// OtherColor is used for languages without a curated color.
const OtherColor = "#6B7280"

// palette holds colors tuned for dark backgrounds, keyed by linguist name.
var palette = map[string]string{
	"TypeScript": "#3178C6",
	"JavaScript": "#F7DF1E",
	"Python":     "#3776AB",
	"Rust":       "#DEA584",
	"Go":         "#00ADD8",
	"Java":       "#ED8B00",
	"Ruby":       "#CC342D",
	"Swift":      "#F05138",
	"Kotlin":     "#7F52FF",
	"C":          "#555555",
	"C++":        "#F34B7D",
	"C#":         "#239120",
	"PHP":        "#777BB4",
	"Scala":      "#DC322F",
	"Haskell":    "#5E5086",
	"Elixir":     "#6E4A7E",
	"Clojure":    "#DB5855",
	"Dart":       "#00B4AB",
	"Shell":      "#89E051",
	"HTML":       "#E34C26",
	"CSS":        "#1572B6",
	"SCSS":       "#CC6699",
	"Vue":        "#4FC08D",
	"Svelte":     "#FF3E00",
}

// Color returns the display color of a language. A non-empty upstream color
// wins; otherwise the name is resolved through linguist aliases (so "golang"
// and "Go" share a color) and looked up in the palette.
func Color(name, upstream string) string {
	if upstream != "" {
		return upstream
	}

	if c, ok := palette[name]; ok {
		return c
	}

	if canonical, ok := enry.GetLanguageByAlias(strings.ToLower(name)); ok {
		if c, found := palette[canonical]; found {
			return c
		}
	}

	return OtherColor
}
