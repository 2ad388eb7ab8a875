// README: Draft order model: location points, route segments, and the two coexisting schemas.
package draft

import "wasel/internal/types"

type TransportType string

const (
	TransportMotorbike TransportType = "motorbike"
	TransportTruck     TransportType = "truck"
)

type OrderType string

const (
	OrderOneWay         OrderType = "one-way"
	OrderMultiDirection OrderType = "multi-direction"
)

type PointType string

const (
	PointPickup  PointType = "pickup"
	PointDropoff PointType = "dropoff"
)

// LocationPoint is one stop in the delivery route. Location stays nil until
// the user places a pin; recipient fields only apply to dropoffs.
type LocationPoint struct {
	ID                string       `json:"id"`
	Type              PointType    `json:"type"`
	Label             string       `json:"label"`
	Location          *types.Point `json:"location,omitempty"`
	StreetName        string       `json:"streetName,omitempty"`
	AreaName          string       `json:"areaName,omitempty"`
	City              string       `json:"city,omitempty"`
	Building          string       `json:"building,omitempty"`
	AdditionalDetails string       `json:"additionalDetails,omitempty"`
	BuildingPhoto     string       `json:"buildingPhoto,omitempty"`
	RecipientName     string       `json:"recipientName,omitempty"`
	RecipientPhone    string       `json:"recipientPhone,omitempty"`
}

// PackageDetails describes one package in the segmented schema.
type PackageDetails struct {
	Description         string   `json:"description"`
	Weight              string   `json:"weight"`
	Dimensions          string   `json:"dimensions,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
	Images              []string `json:"images,omitempty"`
}

// RouteSegment is one package's worth of details within a multi-package order.
type RouteSegment struct {
	ID          string         `json:"id"`
	FromPointID string         `json:"fromPointId,omitempty"`
	ToPointID   string         `json:"toPointId,omitempty"`
	Package     PackageDetails `json:"packageDetails"`
}

// Skeleton is the order blob written by the order-details form. In the legacy
// schema it also carries the flat package fields; in the segmented schema those
// live on the route segments instead.
type Skeleton struct {
	TransportType  TransportType   `json:"transportType"`
	OrderType      OrderType       `json:"orderType"`
	LocationPoints []LocationPoint `json:"locationPoints"`

	// One-way orders may flag a return leg; display-only, it is neither a
	// synthesized point nor part of completion or pricing.
	ReturnToPickup bool `json:"returnToPickup,omitempty"`

	// Truck-only fields.
	TruckType              string `json:"truckType,omitempty"`
	CargoType              string `json:"cargoType,omitempty"`
	IsFragile              bool   `json:"isFragile,omitempty"`
	RequiresRefrigeration  bool   `json:"requiresRefrigeration,omitempty"`
	LoadingEquipmentNeeded bool   `json:"loadingEquipmentNeeded,omitempty"`

	// Motorbike-only fields.
	PackageType string `json:"packageType,omitempty"`
	IsDocuments bool   `json:"isDocuments,omitempty"`
	IsExpress   bool   `json:"isExpress,omitempty"`

	// Legacy flat package fields.
	PackageDescription  string   `json:"packageDescription,omitempty"`
	PackageWeight       string   `json:"packageWeight,omitempty"`
	PackageDimensions   string   `json:"packageDimensions,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
	PackageImages       []string `json:"packageImages,omitempty"`
	PackageVideo        string   `json:"packageVideo,omitempty"`
}

// OrderData is the normalized merge target the summary, payment and
// confirmation steps all read. The flat package fields are always populated
// (sourced from the first segment in the new schema); Segments preserves the
// full list for multi-package rendering.
type OrderData struct {
	Skeleton
	Segments []RouteSegment `json:"routeSegments,omitempty"`
}

// Pickup returns the first located pickup point, or nil.
func (o *OrderData) Pickup() *LocationPoint {
	for i := range o.LocationPoints {
		if o.LocationPoints[i].Type == PointPickup {
			return &o.LocationPoints[i]
		}
	}
	return nil
}
