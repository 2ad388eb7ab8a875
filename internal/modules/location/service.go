// README: Location service thins high-frequency driver updates before they hit the GEO set.
package location

import (
	"context"
	"errors"
)

const (
	// minUpdateIntervalMs drops device reports arriving faster than 1Hz.
	minUpdateIntervalMs = 1000
	// minMovementKm drops jitter from a stationary driver (~5 meters).
	minMovementKm = 0.005
)

var ErrBadUpdate = errors.New("invalid location update")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// UpdateDriverLocation validates, throttles and applies one position report.
func (s *Service) UpdateDriverLocation(ctx context.Context, u Update) (Result, error) {
	if u.DriverID == "" || u.Point.Lat < -90 || u.Point.Lat > 90 || u.Point.Lng < -180 || u.Point.Lng > 180 {
		return Result{}, ErrBadUpdate
	}

	last, err := s.store.LastState(ctx, u.DriverID)
	if err != nil {
		return Result{}, err
	}
	if last != nil {
		if u.TsMs-last.TsMs < minUpdateIntervalMs {
			return Result{Accepted: false, Reason: "throttled"}, nil
		}
		if haversineKm(last.Lat, last.Lng, u.Point.Lat, u.Point.Lng) < minMovementKm {
			return Result{Accepted: false, Reason: "stationary"}, nil
		}
	}

	if err := s.store.SetGeo(ctx, u.DriverID, u.Point); err != nil {
		return Result{}, err
	}
	if err := s.store.SaveLastState(ctx, u.DriverID, lastState{TsMs: u.TsMs, Lat: u.Point.Lat, Lng: u.Point.Lng}); err != nil {
		return Result{}, err
	}
	return Result{Accepted: true}, nil
}
