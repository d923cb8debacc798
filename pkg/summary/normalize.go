package summary

import (
	"regexp"
	"strings"
	"unicode"
)

// noLocationPhrases mark a line (or a whole section) as "model said there is
// nothing here". Matching is lowercase substring.
var noLocationPhrases = []string{
	"none mentioned", "none", "n/a", "not mentioned",
	"no specific", "no locations", "not specified",
	"none were mentioned", "no places", "not applicable",
	"no location", "unidentified", "unknown location",
	"no geographical", "not identifiable", "indoors",
	"indoor setting", "studio", "unspecified",
}

// skipPhrases are narration words the model tends to emit instead of place
// names. A candidate containing any of them is rejected.
var skipPhrases = []string{
	"the video", "this video", "the reel", "various",
	"multiple locations", "several places", "different areas",
	"background", "setting", "scene", "shot", "frame",
	"mentioned", "shown", "visible", "appears", "featured",
}

var (
	prefixRe = regexp.MustCompile(`(?i)^(?:at|in|near|around|from|to)\s+`)

	// Applied in order. Each removes a descriptor the model likes to attach
	// to place names, which only hurts geocoding accuracy.
	descriptorRes = []*regexp.Regexp{
		regexp.MustCompile(`\(.*?\)`),
		regexp.MustCompile(`\[.*?\]`),
		regexp.MustCompile(`(?i)(?:^|\s)(?:the|a|an)\s+`),
		regexp.MustCompile(`(?:\s*[-–—]\s*.+)$`),
		regexp.MustCompile(`(?i)(?:,\s*(?:which|where|that|a|the)\s+.+)$`),
	}
)

const quoteChars = "\"'“”‘’"

// CleanName normalizes a raw location candidate for geocoding: strips
// leading prepositions, parentheticals, articles, dash- and clause-suffixed
// descriptions, quotes and trailing punctuation, then collapses whitespace.
// Idempotent: cleaning an already clean name returns it unchanged.
func CleanName(name string) string {
	cleaned := strings.TrimSpace(name)

	cleaned = prefixRe.ReplaceAllString(cleaned, "")
	for _, re := range descriptorRes {
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	cleaned = strings.Trim(cleaned, quoteChars)
	cleaned = strings.TrimRight(cleaned, ".,;:!?")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	return strings.TrimSpace(cleaned)
}

// IsValidName reports whether a cleaned candidate is plausibly a place name.
func IsValidName(name string) bool {
	nameLower := strings.ToLower(name)
	runes := []rune(name)

	if len(runes) < 2 || len(runes) > 100 {
		return false
	}

	for _, phrase := range skipPhrases {
		if strings.Contains(nameLower, phrase) {
			return false
		}
	}
	for _, phrase := range noLocationPhrases {
		if strings.Contains(nameLower, phrase) {
			return false
		}
	}

	// Mostly digits means a timestamp or a measurement, not a place.
	digits := 0
	letters := 0
	for _, r := range runes {
		if unicode.IsDigit(r) {
			digits++
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if digits*2 > len(runes) {
		return false
	}
	if letters == 0 {
		return false
	}

	// More than six words reads like a sentence, not a name.
	if len(strings.Fields(name)) > 6 {
		return false
	}

	return true
}
