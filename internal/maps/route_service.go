// README: Driving-route estimates over the Google Directions API.
package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// RouteService answers "how long would this delivery leg take by road".
type RouteService struct {
	client *maps.Client
}

// NewRouteService creates a RouteService with the given API key.
func NewRouteService(apiKey string) (*RouteService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{client: client}, nil
}

// DriveEstimate is one routed leg between a pickup and a dropoff.
type DriveEstimate struct {
	Duration   time.Duration `json:"duration"`
	DistanceKm float64       `json:"distanceKm"`
	Summary    string        `json:"summary,omitempty"`
}

// Estimate returns the driving duration and road distance between two
// coordinate pairs. Results are biased to Saudi Arabia.
func (s *RouteService) Estimate(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (*DriveEstimate, error) {
	r := &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", fromLat, fromLng),
		Destination: fmt.Sprintf("%f,%f", toLat, toLng),
		Mode:        maps.TravelModeDriving,
		Language:    "ar",
		Region:      "SA",
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("maps api error: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return &DriveEstimate{
		Duration:   leg.Duration,
		DistanceKm: float64(leg.Distance.Meters) / 1000,
		Summary:    routes[0].Summary,
	}, nil
}
