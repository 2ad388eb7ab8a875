// README: Summary flow models and the permanent order record.
package order

import (
	"time"

	"wasel/internal/modules/draft"
	"wasel/internal/modules/matching"
	"wasel/internal/modules/pricing"
)

// ResumeState is the pending-UI value object that survives navigation away
// from the summary step. It is the single channel for reopening the
// auto-select modal; there is no query-parameter duplicate.
type ResumeState struct {
	AutoSelectOpen bool   `json:"autoSelectOpen"`
	DriverID       string `json:"driverId,omitempty"`
}

// Summary is what the summary step renders: the normalized draft, its derived
// completion score, and any suspended modal state to resume.
type Summary struct {
	Order      *draft.OrderData `json:"order"`
	Completion int              `json:"completion"`
	NewFormat  bool             `json:"newFormat"`
	Resume     ResumeState      `json:"resume"`
}

// IncompleteWarning is the transient, user-correctable notification returned
// when a gated action runs against a draft below 100% completion.
type IncompleteWarning struct {
	Completion          int    `json:"completion"`
	Message             string `json:"message"`
	DismissAfterSeconds int    `json:"dismissAfterSeconds"`
}

// AutoSelectResult is the driver + pricing snapshot written ahead of the
// payment step.
type AutoSelectResult struct {
	Driver  *matching.Driver `json:"driver"`
	Pricing pricing.Estimate `json:"pricing"`
}

// Record is the permanent order record, the only artifact that outlives the
// draft. DriverID is null when the order was confirmed without a driver.
type Record struct {
	OrderID       string              `json:"orderId"`
	Order         draft.OrderData     `json:"order"`
	TransportType draft.TransportType `json:"transportType"`
	OrderType     draft.OrderType     `json:"orderType"`
	CreatedAt     time.Time           `json:"createdAt"`
	DriverID      *string             `json:"driverId"`
	Driver        *matching.Driver    `json:"driverData,omitempty"`
	Pricing       pricing.Estimate    `json:"pricing"`
}
