// Package places implements business prospecting against the Google Maps
// Platform web services: geocode the location, run a nearby search per
// expanded category term, then fetch details for each unique place.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/openhouse-crm/openhouse/internal/domain/prospect"
)

// Searcher finds businesses of a category near a location.
type Searcher interface {
	Search(ctx context.Context, category, location string) ([]prospect.Business, error)
}

// categoryTerms expands a user-facing category into the search terms actually
// sent to the nearby-search API. Unknown categories search verbatim.
var categoryTerms = map[string][]string{
	"restaurants": {"restaurant", "cafe", "bakery"},
	"law firms":   {"law firm", "attorney", "legal services"},
	"salons":      {"hair salon", "beauty salon", "barber shop"},
	"gyms":        {"gym", "fitness center", "yoga studio"},
	"doctors":     {"doctor", "medical clinic", "dentist"},
}

const defaultBaseURL = "https://maps.googleapis.com/maps/api"

// GoogleSearcher calls the Geocoding, Places Nearby Search, and Place Details
// APIs. Nearby searches run sequentially with an inter-call delay to stay
// under the per-second quota.
type GoogleSearcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	delay      time.Duration
}

// NewGoogleSearcher creates a searcher with the given API key.
func NewGoogleSearcher(apiKey string, logger *slog.Logger) *GoogleSearcher {
	return &GoogleSearcher{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		delay:      200 * time.Millisecond,
	}
}

// NewGoogleSearcherForTest creates a searcher pointed at a test server with
// no inter-call delay.
func NewGoogleSearcherForTest(baseURL string, client *http.Client, logger *slog.Logger) *GoogleSearcher {
	return &GoogleSearcher{
		apiKey:     "test-key",
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type nearbyResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string  `json:"place_id"`
		Name     string  `json:"name"`
		Vicinity string  `json:"vicinity"`
		Rating   float64 `json:"rating"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type detailsResponse struct {
	Status string `json:"status"`
	Result struct {
		FormattedAddress     string `json:"formatted_address"`
		FormattedPhoneNumber string `json:"formatted_phone_number"`
		Website              string `json:"website"`
	} `json:"result"`
}

// Search geocodes the location, searches each expanded term, and returns
// results deduplicated by place_id in first-seen order.
func (s *GoogleSearcher) Search(ctx context.Context, category, location string) ([]prospect.Business, error) {
	lat, lng, err := s.geocode(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: %w", location, err)
	}

	terms := categoryTerms[category]
	if len(terms) == 0 {
		terms = []string{category}
	}

	seen := make(map[string]struct{})
	var businesses []prospect.Business
	for i, term := range terms {
		if i > 0 && s.delay > 0 {
			select {
			case <-time.After(s.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		found, err := s.nearby(ctx, lat, lng, term)
		if err != nil {
			s.logger.Warn("nearby search failed", "term", term, "error", err)
			continue
		}
		for _, b := range found {
			if _, dup := seen[b.PlaceID]; dup {
				continue
			}
			seen[b.PlaceID] = struct{}{}
			s.enrich(ctx, &b)
			businesses = append(businesses, b)
		}
	}
	return businesses, nil
}

func (s *GoogleSearcher) geocode(ctx context.Context, location string) (lat, lng float64, err error) {
	var resp geocodeResponse
	if err := s.getJSON(ctx, "/geocode/json", url.Values{"address": {location}}, &resp); err != nil {
		return 0, 0, err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return 0, 0, fmt.Errorf("geocoding returned status %s", resp.Status)
	}
	loc := resp.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

func (s *GoogleSearcher) nearby(ctx context.Context, lat, lng float64, term string) ([]prospect.Business, error) {
	var resp nearbyResponse
	params := url.Values{
		"location": {fmt.Sprintf("%f,%f", lat, lng)},
		"radius":   {"5000"},
		"keyword":  {term},
	}
	if err := s.getJSON(ctx, "/place/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("nearby search returned status %s", resp.Status)
	}

	businesses := make([]prospect.Business, 0, len(resp.Results))
	for _, r := range resp.Results {
		businesses = append(businesses, prospect.Business{
			PlaceID:    r.PlaceID,
			Name:       r.Name,
			Address:    r.Vicinity,
			Rating:     r.Rating,
			Latitude:   r.Geometry.Location.Lat,
			Longitude:  r.Geometry.Location.Lng,
			SearchTerm: term,
		})
	}
	return businesses, nil
}

// enrich fills phone/website/full address from the details API. Failures
// leave the nearby-search fields in place.
func (s *GoogleSearcher) enrich(ctx context.Context, b *prospect.Business) {
	var resp detailsResponse
	params := url.Values{
		"place_id": {b.PlaceID},
		"fields":   {"formatted_address,formatted_phone_number,website"},
	}
	if err := s.getJSON(ctx, "/place/details/json", params, &resp); err != nil {
		s.logger.Warn("place details failed", "placeId", b.PlaceID, "error", err)
		return
	}
	if resp.Status != "OK" {
		return
	}
	if resp.Result.FormattedAddress != "" {
		b.Address = resp.Result.FormattedAddress
	}
	b.Phone = resp.Result.FormattedPhoneNumber
	b.Website = resp.Result.Website
}

func (s *GoogleSearcher) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
