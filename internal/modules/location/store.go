// README: Location store backed by the shared Redis GEO set.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wasel/internal/session"
	"wasel/internal/types"
)

const (
	lastStateKeyPrefix = "geo:driver:%s:last"
	// Stale positions drop out of the throttle state well before a shift ends.
	lastStateTTL = 6 * time.Hour
)

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) SetGeo(ctx context.Context, driverID string, p types.Point) error {
	return s.redis.GeoAdd(ctx, session.DriverGeoKey, &redis.GeoLocation{
		Name:      driverID,
		Longitude: p.Lng,
		Latitude:  p.Lat,
	}).Err()
}

func (s *Store) RemoveGeo(ctx context.Context, driverID string) error {
	return s.redis.ZRem(ctx, session.DriverGeoKey, driverID).Err()
}

func (s *Store) LastState(ctx context.Context, driverID string) (*lastState, error) {
	raw, err := s.redis.Get(ctx, lastStateKey(driverID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st lastState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, nil
	}
	return &st, nil
}

func (s *Store) SaveLastState(ctx context.Context, driverID string, st lastState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, lastStateKey(driverID), raw, lastStateTTL).Err()
}

func lastStateKey(driverID string) string {
	return fmt.Sprintf(lastStateKeyPrefix, driverID)
}
