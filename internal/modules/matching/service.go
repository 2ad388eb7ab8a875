// README: Matching service; picks the nearest eligible driver or fabricates a fallback.
package matching

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wasel/internal/config"
	"wasel/internal/types"
)

type Service struct {
	store *Store
	cfg   config.MatchingConfig
}

func NewService(store *Store, cfg config.MatchingConfig) *Service {
	return &Service{store: store, cfg: cfg}
}

// Nearby lists candidate drivers around a point for the manual-choice flow.
func (s *Service) Nearby(ctx context.Context, p types.Point) ([]Candidate, error) {
	return s.store.NearbyCandidates(ctx, p, s.cfg.RadiusKm, s.cfg.Limit)
}

// AutoSelect returns the nearest driver with a catalog profile. When the GEO
// set is empty, unreachable, or no candidate has a profile, it degrades to a
// synthetic driver so the platform-chosen flow never blocks on supply.
func (s *Service) AutoSelect(ctx context.Context, p types.Point, transport string) *Driver {
	candidates, err := s.store.NearbyCandidates(ctx, p, s.cfg.RadiusKm, s.cfg.Limit)
	if err != nil {
		logrus.WithError(err).Warn("nearby driver search failed, using synthetic driver")
		return syntheticDriver(transport)
	}

	for _, c := range candidates {
		d, err := s.store.GetProfile(ctx, c.DriverID)
		if err == ErrProfileNotFound {
			continue
		}
		if err != nil {
			logrus.WithError(err).WithField("driver_id", c.DriverID).Warn("driver profile lookup failed")
			continue
		}
		return d
	}
	return syntheticDriver(transport)
}

func syntheticDriver(transport string) *Driver {
	return &Driver{
		ID:          uuid.NewString(),
		Name:        "Captain Delivery",
		VehicleType: transport,
		Rating:      4.8,
		Synthetic:   true,
	}
}
