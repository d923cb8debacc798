package summary

import (
	"log/slog"
	"strings"
)

const maxLocations = 10

var locationsFinder = NewSectionFinder("Location", "📍", true)

// ExtractLocationNames pulls location names from a generated summary.
// Returns the cleaned names in order of first appearance, deduplicated
// case-insensitively and capped at maxLocations. A summary without a
// locations section yields nil.
func ExtractLocationNames(text string) []string {
	if text == "" {
		return nil
	}

	section := locationsFinder.Find(text)
	if section == "" {
		slog.Debug("No locations section found in summary")
		return nil
	}

	candidates := ParseCandidates(section)
	if len(candidates) == 0 {
		slog.Debug("No valid locations found in section")
		return nil
	}

	seen := make(map[string]bool)
	var unique []string
	for _, name := range candidates {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, name)
		if len(unique) == maxLocations {
			break
		}
	}

	slog.Debug("Extracted locations from summary", "count", len(unique))
	return unique
}
