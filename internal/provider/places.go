package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/yatralabs/yatra-server/internal/domain"
)

const (
	defaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	defaultPlacesRadius  = 5000
	maxPlaceResults      = 10
)

// PlacesClientConfig holds configuration for the places client.
type PlacesClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// PlacesClient calls the Google Places nearby-search API.
type PlacesClient struct {
	gateway
	apiKey  string
	baseURL string
}

// NewPlacesClient creates a places client.
func NewPlacesClient(cfg PlacesClientConfig) *PlacesClient {
	base := cfg.BaseURL
	if base == "" {
		base = defaultPlacesBaseURL
	}
	return &PlacesClient{
		gateway: newGateway("places", cfg.Timeout),
		apiKey:  cfg.APIKey,
		baseURL: base,
	}
}

type placesResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string  `json:"place_id"`
		Name     string  `json:"name"`
		Rating   float64 `json:"rating"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Nearby fetches up to ten points of interest around coord. A zero radius
// defaults to 5km; an empty category defaults to tourist attractions.
func (c *PlacesClient) Nearby(ctx context.Context, coord domain.Coordinate, radiusMeters int, category string) ([]domain.Place, error) {
	if err := c.requireKey(c.apiKey); err != nil {
		return nil, err
	}
	if radiusMeters <= 0 {
		radiusMeters = defaultPlacesRadius
	}
	if category == "" {
		category = "tourist_attraction"
	}

	params := url.Values{}
	params.Set("location", coord.String())
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", category)
	params.Set("key", c.apiKey)

	var resp placesResponse
	if err := c.getJSON(ctx, c.baseURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, newError(KindRejected, c.name, fmt.Errorf("places error: %s", resp.Status))
	}

	places := make([]domain.Place, 0, min(len(resp.Results), maxPlaceResults))
	for _, r := range resp.Results {
		if len(places) == maxPlaceResults {
			break
		}
		places = append(places, domain.Place{
			ID:         r.PlaceID,
			Name:       r.Name,
			Coordinate: domain.Coordinate{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng},
			Rating:     r.Rating,
		})
	}
	return places, nil
}
