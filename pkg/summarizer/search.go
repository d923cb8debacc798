package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"reelatlas/pkg/llm"
	"reelatlas/pkg/model"
)

// aiMatch is the shape the search prompt asks the model to return.
type aiMatch struct {
	ReelID          string `json:"reel_id"`
	LocationName    string `json:"location_name"`
	RelevanceReason string `json:"relevance_reason"`
}

// SearchLocations asks the model which stored locations match a free-form
// query. Matches are validated against the known reels; anything the model
// invents is silently dropped. A malformed model response degrades to an
// empty result, only transport-level failures surface as errors.
func (s *Service) SearchLocations(ctx context.Context, query string, reels []model.Reel) ([]model.LocationMatch, error) {
	withLocations := make([]model.Reel, 0, len(reels))
	for _, r := range reels {
		if len(r.Locations) > 0 {
			withLocations = append(withLocations, r)
		}
	}
	if len(withLocations) == 0 {
		return []model.LocationMatch{}, nil
	}

	reelsContext, err := json.MarshalIndent(withLocations, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode reels context: %w", err)
	}

	var prompt strings.Builder
	if err := searchPromptTmpl.Execute(&prompt, struct {
		Query        string
		ReelsContext string
	}{Query: query, ReelsContext: string(reelsContext)}); err != nil {
		return nil, fmt.Errorf("failed to render search prompt: %w", err)
	}

	var matches []aiMatch
	if err := s.provider.GenerateJSON(ctx, "search_locations", searchSystemInstruction, prompt.String(), &matches); err != nil {
		if errors.Is(err, llm.ErrMalformedResponse) {
			slog.Warn("Search response was not valid JSON, returning no matches", "error", err)
			return []model.LocationMatch{}, nil
		}
		return nil, fmt.Errorf("location search failed: %w", err)
	}

	results := make([]model.LocationMatch, 0, len(matches))
	for _, m := range matches {
		loc, reel, ok := findLocation(reels, m.ReelID, m.LocationName)
		if !ok {
			slog.Debug("Dropping unknown search match", "reel_id", m.ReelID, "location", m.LocationName)
			continue
		}
		results = append(results, model.LocationMatch{
			Location:        *loc,
			SourceURL:       reel.URL,
			SourceTitle:     reel.Title,
			ReelID:          m.ReelID,
			RelevanceReason: m.RelevanceReason,
		})
	}

	return results, nil
}

// findLocation resolves a model-reported (reel, location) pair against the
// known data. Location names match case-insensitively.
func findLocation(reels []model.Reel, reelID, name string) (*model.Location, *model.Reel, bool) {
	for i := range reels {
		if reels[i].ID != reelID {
			continue
		}
		for j := range reels[i].Locations {
			if strings.EqualFold(reels[i].Locations[j].Name, name) {
				return &reels[i].Locations[j], &reels[i], true
			}
		}
		return nil, nil, false
	}
	return nil, nil, false
}
