// README: Matching tests over a miniredis GEO set; profile lookups degrade without a database.
package matching

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"wasel/internal/config"
	"wasel/internal/session"
	"wasel/internal/types"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewStore(client, nil)
	return NewService(store, config.MatchingConfig{RadiusKm: 10, Limit: 5}), mr
}

func seedDriver(t *testing.T, mr *miniredis.Miniredis, id string, lat, lng float64) {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	err := client.GeoAdd(context.Background(), session.DriverGeoKey,
		&redis.GeoLocation{Name: id, Latitude: lat, Longitude: lng}).Err()
	if err != nil {
		t.Fatalf("seed driver %s: %v", id, err)
	}
}

func TestNearby_OrdersByDistance(t *testing.T) {
	svc, mr := newTestService(t)
	center := types.Point{Lat: 24.7136, Lng: 46.6753}

	seedDriver(t, mr, "far", 24.75, 46.72)
	seedDriver(t, mr, "near", 24.714, 46.676)
	seedDriver(t, mr, "mid", 24.73, 46.69)

	got, err := svc.Nearby(context.Background(), center)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	if got[0].DriverID != "near" || got[1].DriverID != "mid" || got[2].DriverID != "far" {
		t.Errorf("candidates not ordered nearest first: %+v", got)
	}
	for _, c := range got {
		if c.DistanceKm <= 0 {
			t.Errorf("candidate %s missing distance", c.DriverID)
		}
	}
}

func TestNearby_RespectsRadius(t *testing.T) {
	svc, mr := newTestService(t)
	center := types.Point{Lat: 24.7136, Lng: 46.6753}

	seedDriver(t, mr, "close", 24.714, 46.676)
	// Jeddah, roughly 850km away.
	seedDriver(t, mr, "another-city", 21.4858, 39.1925)

	got, err := svc.Nearby(context.Background(), center)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(got) != 1 || got[0].DriverID != "close" {
		t.Errorf("expected only the in-radius driver, got %+v", got)
	}
}

// Without a profile catalog every candidate is profile-less, so the
// platform-chosen flow must still hand back a usable driver.
func TestAutoSelect_SyntheticFallback(t *testing.T) {
	svc, mr := newTestService(t)
	center := types.Point{Lat: 24.7136, Lng: 46.6753}

	tests := []struct {
		name string
		seed func()
	}{
		{"empty geo set", func() {}},
		{"candidates without profiles", func() { seedDriver(t, mr, "d1", 24.714, 46.676) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.seed()
			d := svc.AutoSelect(context.Background(), center, "truck")
			if d == nil {
				t.Fatal("auto-select must never return nil")
			}
			if !d.Synthetic {
				t.Error("expected a synthetic driver")
			}
			if d.ID == "" || d.Name == "" {
				t.Errorf("synthetic driver missing identity: %+v", d)
			}
			if d.VehicleType != "truck" {
				t.Errorf("synthetic driver should mirror the requested transport, got %q", d.VehicleType)
			}
			if d.Rating <= 0 {
				t.Errorf("synthetic driver needs a presentable rating, got %v", d.Rating)
			}
		})
	}
}

func TestAutoSelect_DistinctSyntheticIDs(t *testing.T) {
	svc, _ := newTestService(t)
	center := types.Point{Lat: 24.7136, Lng: 46.6753}

	a := svc.AutoSelect(context.Background(), center, "motorbike")
	b := svc.AutoSelect(context.Background(), center, "motorbike")
	if a.ID == b.ID {
		t.Error("synthetic drivers should not share IDs")
	}
}
