// README: Session-scoped repository over Redis; one typed accessor pair per logical draft key.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Logical key layout. Draft keys expire with the session; driver slots and
// permanent order records do not.
const (
	keySkeleton = "draft:%s:skeleton"
	keySegments = "draft:%s:segments"
	keyPricing  = "draft:%s:pricing"
	keyResume   = "draft:%s:resume"
	keyDriver   = "driver:%s"
	keyOrder    = "order:%s"

	// DriverGeoKey is the GEO set of live driver positions, written by the
	// location module and read by matching.
	DriverGeoKey = "geo:drivers"
)

type Repo struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRepo(redis *redis.Client, ttl time.Duration) *Repo {
	return &Repo{redis: redis, ttl: ttl}
}

func (r *Repo) SaveSkeleton(ctx context.Context, sid string, v any) error {
	return r.setJSON(ctx, skeletonKey(sid), v, r.ttl)
}

// LoadSkeleton reports false when the key is absent or holds malformed JSON.
func (r *Repo) LoadSkeleton(ctx context.Context, sid string, v any) (bool, error) {
	return r.getJSON(ctx, skeletonKey(sid), v)
}

func (r *Repo) SaveSegments(ctx context.Context, sid string, v any) error {
	return r.setJSON(ctx, segmentsKey(sid), v, r.ttl)
}

func (r *Repo) LoadSegments(ctx context.Context, sid string, v any) (bool, error) {
	return r.getJSON(ctx, segmentsKey(sid), v)
}

// ClearSegments removes the route-segments key. Segments are a one-shot
// input: the confirmation step clears them before anything else runs.
func (r *Repo) ClearSegments(ctx context.Context, sid string) error {
	return r.redis.Del(ctx, segmentsKey(sid)).Err()
}

func (r *Repo) SavePricing(ctx context.Context, sid string, v any) error {
	return r.setJSON(ctx, pricingKey(sid), v, r.ttl)
}

func (r *Repo) LoadPricing(ctx context.Context, sid string, v any) (bool, error) {
	return r.getJSON(ctx, pricingKey(sid), v)
}

func (r *Repo) SaveResume(ctx context.Context, sid string, v any) error {
	return r.setJSON(ctx, resumeKey(sid), v, r.ttl)
}

func (r *Repo) LoadResume(ctx context.Context, sid string, v any) (bool, error) {
	return r.getJSON(ctx, resumeKey(sid), v)
}

func (r *Repo) ClearResume(ctx context.Context, sid string) error {
	return r.redis.Del(ctx, resumeKey(sid)).Err()
}

// SaveDriver writes the per-driver cache slot. The slot has no TTL; its
// retirement is owned by the driver listing flow, not the order flow.
func (r *Repo) SaveDriver(ctx context.Context, driverID string, v any) error {
	return r.setJSON(ctx, driverKey(driverID), v, 0)
}

func (r *Repo) LoadDriver(ctx context.Context, driverID string, v any) (bool, error) {
	return r.getJSON(ctx, driverKey(driverID), v)
}

// SaveOrderRecord persists a confirmed order. Records are deliberately never
// deleted by the order flow.
func (r *Repo) SaveOrderRecord(ctx context.Context, orderID string, v any) error {
	return r.setJSON(ctx, orderKey(orderID), v, 0)
}

func (r *Repo) LoadOrderRecord(ctx context.Context, orderID string, v any) (bool, error) {
	return r.getJSON(ctx, orderKey(orderID), v)
}

// ClearDraft purges the ephemeral draft keys after confirmation. The resume
// flag rides along: with the draft gone there is nothing to resume.
func (r *Repo) ClearDraft(ctx context.Context, sid string) error {
	return r.redis.Del(ctx, skeletonKey(sid), segmentsKey(sid), pricingKey(sid), resumeKey(sid)).Err()
}

// getJSON treats both missing keys and malformed payloads as absence.
// Malformed payloads are logged and never propagate as errors.
func (r *Repo) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, err := r.redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("discarding malformed session value")
		return false, nil
	}
	return true, nil
}

func (r *Repo) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.redis.Set(ctx, key, raw, ttl).Err()
}

func skeletonKey(sid string) string { return fmt.Sprintf(keySkeleton, sid) }
func segmentsKey(sid string) string { return fmt.Sprintf(keySegments, sid) }
func pricingKey(sid string) string  { return fmt.Sprintf(keyPricing, sid) }
func resumeKey(sid string) string   { return fmt.Sprintf(keyResume, sid) }
func driverKey(id string) string    { return fmt.Sprintf(keyDriver, id) }
func orderKey(id string) string     { return fmt.Sprintf(keyOrder, id) }
