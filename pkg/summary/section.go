// Package summary extracts structured data (title, location names) from the
// free-form text the generation model returns. The model output has no schema
// guarantee, so everything here is ordered-pattern matching and heuristics.
package summary

import (
	"regexp"
	"strings"
)

// patternStrategy is one alternative for locating a labeled block.
type patternStrategy struct {
	name string
	re   *regexp.Regexp
}

// SectionFinder locates a labeled section inside a summary using an ordered
// list of pattern strategies. The order is load-bearing: the most specific
// heading form is tried first, and the first strategy that yields non-empty
// content wins. No merging across strategies.
type SectionFinder struct {
	strategies []patternStrategy
}

// NewSectionFinder builds a finder for the given section label.
// icon is the heading glyph the prompt asks for (may be empty); plural allows
// an optional trailing "s" on the label ("Location" matches "Locations").
func NewSectionFinder(label, icon string, plural bool) *SectionFinder {
	lb := regexp.QuoteMeta(label)
	if plural {
		lb += "s?"
	}
	lbColonOpt := lb + `[ \t]*:?`
	lbColon := lb + `[ \t]*:`

	ic := regexp.QuoteMeta(icon)
	icOpt := ""
	if icon != "" {
		icOpt = "(?:" + ic + `[ \t]*)?`
	}

	headingBoundary := `(?:\n#{1,4}[ \t]|\n---|$)`

	strategies := []patternStrategy{
		// ### 📍 Locations:
		{"heading-icon", regexp.MustCompile(`(?is)(?:^|\n)#{1,4}[ \t]*` + ic + `[ \t]*` + lbColonOpt + `[ \t]*\n(.+?)` + headingBoundary)},
		// ### Locations:
		{"heading", regexp.MustCompile(`(?is)(?:^|\n)#{1,4}[ \t]*` + lbColonOpt + `[ \t]*\n(.+?)` + headingBoundary)},
		// **Locations:**
		{"bold", regexp.MustCompile(`(?is)(?:^|\n)\*\*[ \t]*` + icOpt + lbColonOpt + `[ \t]*\*\*[ \t]*\n?(.+?)(?:\n\*\*|\n#{1,4}|\n---|$)`)},
		// Locations: on a bare line
		{"bare", regexp.MustCompile(`(?is)(?:^|\n)` + icOpt + lbColon + `[ \t]*\n(.+?)(?:\n[A-Z][a-z]+:|\n#{1,4}|\n---|$)`)},
	}

	return &SectionFinder{strategies: strategies}
}

// Find returns the section body, or "" when no strategy matches.
// Absence of a section is a normal outcome, not an error.
func (f *SectionFinder) Find(text string) string {
	if text == "" {
		return ""
	}
	for _, s := range f.strategies {
		m := s.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		content := strings.TrimSpace(m[1])
		if content != "" {
			return content
		}
	}
	return ""
}
