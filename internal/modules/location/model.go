// README: Driver location update model.
package location

import "wasel/internal/types"

// Update is one position report from a driver device.
type Update struct {
	DriverID string      `json:"driverId"`
	Seq      int64       `json:"seq"`
	Point    types.Point `json:"point"`
	TsMs     int64       `json:"tsMs"`
}

// Result reports whether an update was applied to the GEO set. Rejected
// updates are not errors; devices over-report and the service thins them out.
type Result struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
}

// lastState is the per-driver throttle anchor kept alongside the GEO entry.
type lastState struct {
	TsMs int64   `json:"tsMs"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}
