package summary

import (
	"regexp"
	"strings"
)

// The tag glyph carries an optional variation selector depending on how the
// model renders it.
const tagIcon = `(?:🏷\x{FE0F}?[ \t]*)?`

// Ordered like the section strategies: heading form first, bold, then bare.
var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:^|\n)#{1,4}[ \t]*` + tagIcon + `Title[ \t]*:?[ \t]*\n+[ \t]*(.+)`),
	regexp.MustCompile(`(?i)(?:^|\n)\*\*[ \t]*` + tagIcon + `Title[ \t]*:?[ \t]*\*\*[ \t]*\n?[ \t]*(.+)`),
	regexp.MustCompile(`(?i)(?:^|\n)` + tagIcon + `Title[ \t]*:?[ \t]*\n?[ \t]*(.+)`),
}

// ExtractTitle pulls the model-generated title out of a summary.
// An alternative that matches but fails the length gate does not win; the
// next alternative still gets a chance. ok is false when no usable title
// was found, which callers treat as "untitled", not as an error.
func ExtractTitle(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, re := range titlePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		title := strings.TrimSpace(m[1])
		title = strings.Trim(title, quoteChars)
		title = strings.Trim(title, ".")
		title = strings.Join(strings.Fields(title), " ")

		if n := len([]rune(title)); n >= 3 && n <= 150 {
			return title, true
		}
	}

	return "", false
}
