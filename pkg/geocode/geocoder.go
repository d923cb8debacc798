// Package geocode resolves location names to coordinates using the Google
// Geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"time"

	"github.com/paulmach/orb"
	"golang.org/x/time/rate"

	"reelatlas/pkg/model"
	"reelatlas/pkg/request"
	"reelatlas/pkg/summary"
	"reelatlas/pkg/tracker"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// providerName is the tracker key for geocoding calls.
const providerName = "geocoding"

// coordDecimals controls duplicate detection. Three decimal places is about
// 110m at the equator, enough to collapse "Eiffel Tower" and "Tour Eiffel"
// onto one point.
const coordDecimals = 3

// maxLocations bounds a batch result no matter how many names came in.
const maxLocations = 10

// Geocoder resolves place names via the Google Geocoding API. A missing API
// key degrades every lookup to a no-op instead of failing the pipeline.
type Geocoder struct {
	apiKey  string
	client  *request.Client
	tracker *tracker.Tracker
	limiter *rate.Limiter
	baseURL string
}

// New creates a Geocoder. apiKey may be empty; lookups then return nothing.
func New(apiKey string, rc *request.Client, tk *tracker.Tracker) *Geocoder {
	if apiKey == "" {
		slog.Warn("Geocoding API key not set, location resolution disabled")
	}
	return &Geocoder{
		apiKey:  apiKey,
		client:  rc,
		tracker: tk,
		limiter: rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
		baseURL: defaultBaseURL,
	}
}

type apiResponse struct {
	Status  string      `json:"status"`
	Results []apiResult `json:"results"`
}

type apiResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// Geocode resolves a single name. It returns (nil, nil) when the name is
// unusable or the API knows no such place; that is a normal outcome, not an
// error. The name is cleaned and validated again here so callers may pass
// raw candidates.
func (g *Geocoder) Geocode(ctx context.Context, name string) (*model.Location, error) {
	if g.apiKey == "" {
		return nil, nil
	}

	cleaned := summary.CleanName(name)
	if !summary.IsValidName(cleaned) {
		slog.Debug("Skipping invalid location candidate", "name", name)
		return nil, nil
	}

	q := url.Values{}
	q.Set("address", cleaned)
	q.Set("key", g.apiKey)

	body, err := g.client.Get(ctx, g.baseURL+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("geocode request for %q: %w", cleaned, err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("geocode response for %q: %w", cleaned, err)
	}

	switch resp.Status {
	case "OK":
		// fall through to result parsing
	case "ZERO_RESULTS":
		if g.tracker != nil {
			g.tracker.TrackAPIZero(providerName)
		}
		slog.Debug("No geocoding results", "name", cleaned)
		return nil, nil
	case "REQUEST_DENIED":
		return nil, fmt.Errorf("geocoding request denied, check the API key")
	case "OVER_QUERY_LIMIT":
		return nil, fmt.Errorf("geocoding quota exceeded")
	default:
		return nil, fmt.Errorf("geocoding failed for %q: %s", cleaned, resp.Status)
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	first := resp.Results[0]
	return &model.Location{
		Name:        cleaned,
		Latitude:    first.Geometry.Location.Lat,
		Longitude:   first.Geometry.Location.Lng,
		DisplayName: first.FormattedAddress,
	}, nil
}

// GeocodeBatch resolves names sequentially, throttled to one request per
// 100ms. Results landing on the same rounded coordinate are collapsed to
// the first name that produced them; input order is preserved and the
// output never exceeds maxLocations. Individual failures are logged and
// skipped, never aborting the batch.
func (g *Geocoder) GeocodeBatch(ctx context.Context, names []string) []model.Location {
	if g.apiKey == "" {
		return nil
	}

	seen := make(map[orb.Point]bool)
	var locations []model.Location

	for i, name := range names {
		// The throttle spaces calls within a batch; the first call goes
		// out immediately even when a previous batch just finished.
		if i > 0 {
			if err := g.limiter.Wait(ctx); err != nil {
				slog.Warn("Geocoding batch aborted", "error", err)
				break
			}
		}

		loc, err := g.Geocode(ctx, name)
		if err != nil {
			slog.Warn("Geocoding failed", "name", name, "error", err)
			continue
		}
		if loc == nil {
			continue
		}

		key := orb.Point{roundCoord(loc.Longitude), roundCoord(loc.Latitude)}
		if seen[key] {
			slog.Debug("Skipping duplicate location", "name", name)
			continue
		}
		seen[key] = true
		locations = append(locations, *loc)
		slog.Debug("Geocoded location", "name", loc.Name, "lat", loc.Latitude, "lng", loc.Longitude)
		if len(locations) == maxLocations {
			break
		}
	}

	return locations
}

func roundCoord(v float64) float64 {
	shift := math.Pow10(coordDecimals)
	return math.Round(v*shift) / shift
}
