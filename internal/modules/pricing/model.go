// README: Pricing breakdown model and compile-time rate constants.
package pricing

const (
	// PlatformFeeRate and VATRate are fixed product-wide; they are not
	// configuration.
	PlatformFeeRate = 0.10
	VATRate         = 0.15

	ratePerKmMotorbike = 2.0
	ratePerKmTruck     = 5.0

	surchargeExpress       = 20.0
	surchargeRefrigeration = 15.0
	surchargeLoading       = 25.0
)

// Breakdown is the tax-inclusive price decomposition, in decimal SAR.
// Every field is rounded to 2 decimals at its own stage, so the line items
// shown to the user always re-add exactly.
type Breakdown struct {
	BasePrice   float64 `json:"basePrice"`
	PlatformFee float64 `json:"platformFee"`
	Subtotal    float64 `json:"subtotal"`
	VAT         float64 `json:"vat"`
	Total       float64 `json:"total"`
}

// Estimate is the order-flow variant that also carries the route distance.
type Estimate struct {
	Breakdown
	DistanceKm float64 `json:"distance"`
}
