// README: Completion engine; derives the 0-100 readiness score that gates driver selection.
package draft

import "math"

// CompletionPercentage scores the draft against a dynamic checklist of
// required fields. It is recomputed from current draft state on every read
// and never stored, so it cannot go stale relative to edits.
func CompletionPercentage(o *OrderData) int {
	if o == nil {
		return 0
	}

	var checks []bool
	for i := range o.LocationPoints {
		p := &o.LocationPoints[i]
		checks = append(checks,
			p.Location != nil,
			p.AdditionalDetails != "",
		)
		if p.Type == PointDropoff {
			checks = append(checks,
				p.RecipientName != "",
				p.RecipientPhone != "",
			)
		}
	}

	checks = append(checks,
		o.PackageDescription != "",
		o.PackageWeight != "",
	)

	if o.TransportType == TransportTruck {
		checks = append(checks, o.TruckType != "")
	}

	if len(checks) == 0 {
		return 0
	}

	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return int(math.Round(100 * float64(filled) / float64(len(checks))))
}
