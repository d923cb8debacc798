package summary

import (
	"regexp"
	"strings"
)

var (
	bulletRe = regexp.MustCompile(`^[\s\-\*•►▸→·‣⁃\d\.\)]+\s*`)
	conjRe   = regexp.MustCompile(`(?i)\s+and\s+`)
)

// ParseCandidates splits a locations section body into cleaned, validated
// location names. Splitting policy per line:
//   - more than two commas: a list like "Paris, New York, Tokyo, Rome"
//   - zero commas with " and ": a pair like "Paris and London"
//   - otherwise the whole line is one candidate, so "City, Country" survives
func ParseCandidates(body string) []string {
	// The model sometimes answers the section with a refusal phrase instead
	// of a list. Treat the whole body as empty in that case.
	bodyLower := strings.ToLower(strings.TrimSpace(body))
	for _, phrase := range noLocationPhrases {
		if bodyLower == phrase || strings.HasPrefix(bodyLower, phrase) {
			return nil
		}
	}

	var candidates []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lineLower := strings.ToLower(line)
		skip := false
		for _, phrase := range noLocationPhrases {
			if strings.Contains(lineLower, phrase) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		line = strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}

		commas := strings.Count(line, ",")
		switch {
		case commas > 2:
			for _, part := range strings.Split(line, ",") {
				if cleaned := CleanName(part); IsValidName(cleaned) {
					candidates = append(candidates, cleaned)
				}
			}
		case commas == 0 && strings.Contains(lineLower, " and "):
			for _, part := range conjRe.Split(line, -1) {
				if cleaned := CleanName(part); IsValidName(cleaned) {
					candidates = append(candidates, cleaned)
				}
			}
		default:
			if cleaned := CleanName(line); IsValidName(cleaned) {
				candidates = append(candidates, cleaned)
			}
		}
	}

	return candidates
}
