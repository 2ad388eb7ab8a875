package pricing

import (
	"math"
	"testing"

	"wasel/internal/modules/draft"
	"wasel/internal/types"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		base float64
		want Breakdown
	}{
		{
			name: "reference example",
			base: 100,
			want: Breakdown{BasePrice: 100, PlatformFee: 10, Subtotal: 110, VAT: 16.5, Total: 126.5},
		},
		{
			name: "zero base",
			base: 0,
			want: Breakdown{},
		},
		{
			name: "rounds at every stage",
			base: 33.333,
			// base 33.33, fee 3.33, subtotal 36.66, vat 5.50, total 42.16
			want: Breakdown{BasePrice: 33.33, PlatformFee: 3.33, Subtotal: 36.66, VAT: 5.5, Total: 42.16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.base)
			if got != tt.want {
				t.Errorf("Calculate(%v) = %+v, want %+v", tt.base, got, tt.want)
			}
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	for _, base := range []float64{0, 1, 99.99, 100, 1234.56} {
		a := Calculate(base)
		b := Calculate(base)
		if a != b {
			t.Errorf("Calculate(%v) not deterministic: %+v vs %+v", base, a, b)
		}
		// Feeding the already-rounded base back through must not drift.
		if again := Calculate(a.BasePrice); again != a {
			t.Errorf("Calculate not stable over rounded base %v", base)
		}
	}
}

func routedOrder(transport draft.TransportType) *draft.OrderData {
	return &draft.OrderData{Skeleton: draft.Skeleton{
		TransportType: transport,
		LocationPoints: []draft.LocationPoint{
			{Type: draft.PointPickup, Location: &types.Point{Lat: 24.7136, Lng: 46.6753}},
			{Type: draft.PointDropoff, Location: &types.Point{Lat: 24.7742, Lng: 46.7386}},
		},
	}}
}

func TestEstimateOrder_TruckCostsMorePerKm(t *testing.T) {
	bike := EstimateOrder(routedOrder(draft.TransportMotorbike))
	truck := EstimateOrder(routedOrder(draft.TransportTruck))

	if bike.Total <= 0 || truck.Total <= 0 {
		t.Fatalf("expected positive totals, got bike=%v truck=%v", bike.Total, truck.Total)
	}
	if truck.Total <= bike.Total {
		t.Errorf("truck should cost more than motorbike on the same route: truck=%v bike=%v",
			truck.Total, bike.Total)
	}
	if bike.DistanceKm <= 0 {
		t.Errorf("expected a measured distance, got %v", bike.DistanceKm)
	}
	if bike.DistanceKm != truck.DistanceKm {
		t.Errorf("distance should not depend on transport: %v vs %v", bike.DistanceKm, truck.DistanceKm)
	}
}

func TestEstimateOrder_Surcharges(t *testing.T) {
	plain := EstimateOrder(routedOrder(draft.TransportMotorbike))

	express := routedOrder(draft.TransportMotorbike)
	express.IsExpress = true
	withExpress := EstimateOrder(express)

	if diff := withExpress.BasePrice - plain.BasePrice; math.Abs(diff-surchargeExpress) > 0.01 {
		t.Errorf("express surcharge not applied to base: diff %v, want %v", diff, surchargeExpress)
	}

	truck := routedOrder(draft.TransportTruck)
	truck.RequiresRefrigeration = true
	truck.LoadingEquipmentNeeded = true
	loaded := EstimateOrder(truck)
	plainTruck := EstimateOrder(routedOrder(draft.TransportTruck))

	want := surchargeRefrigeration + surchargeLoading
	if diff := loaded.BasePrice - plainTruck.BasePrice; math.Abs(diff-want) > 0.01 {
		t.Errorf("truck surcharges not applied: diff %v, want %v", diff, want)
	}
}

// Missing pins are not an error; they produce a zero estimate.
func TestEstimateOrder_InsufficientCoordinates(t *testing.T) {
	o := routedOrder(draft.TransportMotorbike)
	o.LocationPoints[1].Location = nil

	if got := EstimateOrder(o); got != (Estimate{}) {
		t.Errorf("expected zero estimate, got %+v", got)
	}
	if got := EstimateOrder(nil); got != (Estimate{}) {
		t.Errorf("expected zero estimate for nil order, got %+v", got)
	}
}

func TestRouteDistanceKm_SumsConsecutiveLegs(t *testing.T) {
	points := []draft.LocationPoint{
		{Location: &types.Point{Lat: 24.70, Lng: 46.60}},
		{Location: &types.Point{Lat: 24.75, Lng: 46.65}},
		{Location: &types.Point{Lat: 24.80, Lng: 46.70}},
	}
	full := RouteDistanceKm(points)
	leg1 := RouteDistanceKm(points[:2])
	leg2 := RouteDistanceKm(points[1:])

	if math.Abs(full-(leg1+leg2)) > 0.001 {
		t.Errorf("route distance should sum legs: full=%v legs=%v", full, leg1+leg2)
	}
}

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(126.5, false); got != "126.50 SAR" {
		t.Errorf("FormatPrice(en) = %q", got)
	}
	if got := FormatPrice(126.5, true); got != "126.50 ريال" {
		t.Errorf("FormatPrice(ar) = %q", got)
	}
}
