// README: Matching store backed by Redis GEO for positions and Postgres for driver profiles.
package matching

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"wasel/internal/session"
	"wasel/internal/types"
)

var ErrProfileNotFound = errors.New("driver profile not found")

type Store struct {
	redis *redis.Client
	db    *pgxpool.Pool
}

// NewStore accepts a nil db pool; profile lookups then report not-found and
// callers fall back to synthetic drivers.
func NewStore(redis *redis.Client, db *pgxpool.Pool) *Store {
	return &Store{redis: redis, db: db}
}

// NearbyCandidates returns driver IDs within radiusKm of p, nearest first.
func (s *Store) NearbyCandidates(ctx context.Context, p types.Point, radiusKm float64, limit int) ([]Candidate, error) {
	results, err := s.redis.GeoRadius(ctx, session.DriverGeoKey, p.Lng, p.Lat, &redis.GeoRadiusQuery{
		Radius:   radiusKm,
		Unit:     "km",
		WithDist: true,
		Count:    limit,
		Sort:     "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, len(results))
	for i, r := range results {
		candidates[i] = Candidate{DriverID: r.Name, DistanceKm: r.Dist}
	}
	return candidates, nil
}

// GetProfile loads a driver profile from the catalog.
func (s *Store) GetProfile(ctx context.Context, id string) (*Driver, error) {
	if s.db == nil {
		return nil, ErrProfileNotFound
	}
	row := s.db.QueryRow(ctx, `
		SELECT id, name, phone, vehicle_type, plate_number, rating
		FROM drivers
		WHERE id = $1 AND active`, id,
	)

	var d Driver
	err := row.Scan(&d.ID, &d.Name, &d.Phone, &d.VehicleType, &d.PlateNumber, &d.Rating)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
