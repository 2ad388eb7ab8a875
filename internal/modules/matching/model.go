// README: Driver records produced by matching.
package matching

// Driver is the record attached to an order when a driver is selected. The
// auto-select path may fabricate one (Synthetic=true) when no live candidate
// is available; the real matching backend and the fallback satisfy the same
// shape.
type Driver struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone,omitempty"`
	VehicleType string  `json:"vehicleType"`
	PlateNumber string  `json:"plateNumber,omitempty"`
	Rating      float64 `json:"rating"`
	Synthetic   bool    `json:"synthetic,omitempty"`
}

// Candidate pairs a GEO hit with its distance from the pickup.
type Candidate struct {
	DriverID   string  `json:"driverId"`
	DistanceKm float64 `json:"distanceKm"`
}
