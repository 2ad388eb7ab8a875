// README: Nearby store discovery via the Google Places API.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Store represents a simplified nearby-store result for the homepage.
type Store struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Rating           float32 `json:"rating"`
	PlaceID          string  `json:"placeId"`
	UserRatingsTotal int     `json:"userRatingsTotal"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
}

// PlacesService handles interactions with the Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a PlacesService with the given API key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// NearbyStores lists open stores around a coordinate, nearest-biased by the
// API, capped at limit. maxKm bounds the search radius.
func (s *PlacesService) NearbyStores(ctx context.Context, lat, lng float64, limit int, maxKm float64) ([]Store, error) {
	if limit <= 0 {
		limit = 10
	}
	if maxKm <= 0 {
		maxKm = 5
	}

	r := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: lat, Lng: lng},
		Radius:   uint(maxKm * 1000),
		Type:     maps.PlaceTypeStore,
		OpenNow:  true,
	}

	resp, err := s.client.NearbySearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Store
	for _, result := range resp.Results {
		results = append(results, Store{
			Name:             result.Name,
			Address:          result.Vicinity,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
			Lat:              result.Geometry.Location.Lat,
			Lng:              result.Geometry.Location.Lng,
		})
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}
