// README: Pricing engine; pure fee/VAT pipeline plus the distance-based order estimator.
package pricing

import (
	"fmt"
	"math"

	"wasel/internal/modules/draft"
)

// Calculate runs the fee/VAT pipeline over a base price. Pure and
// deterministic; callers guard against negative or NaN input.
func Calculate(basePrice float64) Breakdown {
	base := round2(basePrice)
	fee := round2(base * PlatformFeeRate)
	subtotal := round2(base + fee)
	vat := round2(subtotal * VATRate)
	total := round2(subtotal + vat)
	return Breakdown{
		BasePrice:   base,
		PlatformFee: fee,
		Subtotal:    subtotal,
		VAT:         vat,
		Total:       total,
	}
}

// EstimateOrder derives the base price from the route distance and flat
// surcharges, then delegates to the same rounding pipeline. Routes without at
// least two located points produce an all-zero estimate rather than an error.
func EstimateOrder(o *draft.OrderData) Estimate {
	if o == nil {
		return Estimate{}
	}

	dist := RouteDistanceKm(o.LocationPoints)
	if dist == 0 {
		return Estimate{}
	}

	perKm := ratePerKmMotorbike
	if o.TransportType == draft.TransportTruck {
		perKm = ratePerKmTruck
	}

	base := dist * perKm
	if o.IsExpress {
		base += surchargeExpress
	}
	if o.RequiresRefrigeration {
		base += surchargeRefrigeration
	}
	if o.LoadingEquipmentNeeded {
		base += surchargeLoading
	}

	return Estimate{
		Breakdown:  Calculate(base),
		DistanceKm: round2(dist),
	}
}

// RouteDistanceKm sums the great-circle legs between consecutive located
// points. Points without a pin are skipped; fewer than two pins means no
// measurable route.
func RouteDistanceKm(points []draft.LocationPoint) float64 {
	var located []draft.LocationPoint
	for _, p := range points {
		if p.Location != nil {
			located = append(located, p)
		}
	}
	if len(located) < 2 {
		return 0
	}

	total := 0.0
	for i := 1; i < len(located); i++ {
		a, b := located[i-1].Location, located[i].Location
		total += haversineKm(a.Lat, a.Lng, b.Lat, b.Lng)
	}
	return total
}

// FormatPrice renders a value with the localized currency word.
func FormatPrice(v float64, arabic bool) string {
	if arabic {
		return fmt.Sprintf("%.2f ريال", v)
	}
	return fmt.Sprintf("%.2f SAR", v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
