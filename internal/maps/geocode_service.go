// README: Reverse geocoding wrapper over the Google Maps API with a coordinate fallback.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// GeocodeService resolves coordinates to human-readable addresses.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a GeocodeService with the given API key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// ReverseGeocode returns the formatted address for a coordinate pair in the
// requested language ("ar" or "en"). Any failure degrades to the raw
// coordinate string; address display never blocks the flow.
func (s *GeocodeService) ReverseGeocode(ctx context.Context, lat, lng float64, locale string) string {
	fallback := fmt.Sprintf("%.5f, %.5f", lat, lng)
	if s == nil || s.client == nil {
		return fallback
	}

	r := &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: lat, Lng: lng},
		Language: locale,
	}
	results, err := s.client.ReverseGeocode(ctx, r)
	if err != nil || len(results) == 0 {
		return fallback
	}
	return results[0].FormattedAddress
}
