package models

// TripStatus represents the lifecycle state of a trip.
type TripStatus string

const (
	TripStatusPlanning   TripStatus = "planning"
	TripStatusInProgress TripStatus = "in_progress"
	TripStatusCompleted  TripStatus = "completed"
)

// TripLocation is a named place on a trip.
type TripLocation struct {
	Name  string   `json:"name,omitempty"`
	City  string   `json:"city,omitempty"`
	State string   `json:"state,omitempty"`
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`
}

// Trip represents a driver's trip.
type Trip struct {
	ID                string       `json:"id"`
	Status            TripStatus   `json:"status"`
	DriverName        string       `json:"driverName,omitempty"`
	CarrierName       string       `json:"carrierName,omitempty"`
	HomeTerminal      string       `json:"homeTerminal,omitempty"`
	CurrentLocation   TripLocation `json:"currentLocation"`
	PickupLocation    TripLocation `json:"pickupLocation"`
	DropoffLocation   TripLocation `json:"dropoffLocation"`
	CurrentCycleHours float64      `json:"currentCycleHours"`
	TotalDistance     float64      `json:"totalDistance"`
	EstimatedDuration float64      `json:"estimatedDuration"`
	StartDatetime     *Timestamp   `json:"startDatetime,omitempty"`
	EndDatetime       *Timestamp   `json:"endDatetime,omitempty"`
	CreatedAt         Timestamp    `json:"createdAt"`
	UpdatedAt         Timestamp    `json:"updatedAt"`
}

// TripCreateRequest is the request body for creating a trip.
type TripCreateRequest struct {
	CurrentLocation   TripLocation `json:"currentLocation"`
	PickupLocation    TripLocation `json:"pickupLocation"`
	DropoffLocation   TripLocation `json:"dropoffLocation"`
	CurrentCycleHours float64      `json:"currentCycleHours,omitempty"`
	DriverName        string       `json:"driverName,omitempty"`
	CarrierName       string       `json:"carrierName,omitempty"`
	HomeTerminal      string       `json:"homeTerminal,omitempty"`
}

// TripUpdateRequest is the request body for updating a trip.
type TripUpdateRequest struct {
	CurrentLocation   *TripLocation `json:"currentLocation,omitempty"`
	PickupLocation    *TripLocation `json:"pickupLocation,omitempty"`
	DropoffLocation   *TripLocation `json:"dropoffLocation,omitempty"`
	CurrentCycleHours *float64      `json:"currentCycleHours,omitempty"`
	DriverName        *string       `json:"driverName,omitempty"`
	CarrierName       *string       `json:"carrierName,omitempty"`
	HomeTerminal      *string       `json:"homeTerminal,omitempty"`
}

// PagedTrips is a page of trips.
type PagedTrips struct {
	Items []Trip            `json:"items"`
	Meta  PagedResponseMeta `json:"meta"`
}

// Route is a computed route between the trip's endpoints.
type Route struct {
	Polyline      string  `json:"polyline"`
	Path          []Point `json:"path"`
	DistanceMiles float64 `json:"distanceMiles"`
	DurationHours float64 `json:"durationHours"`
	BoundingBox   GeoBox  `json:"boundingBox"`
	Provider      string  `json:"provider,omitempty"`
}

// RequiredStop is a suggested stop along a route.
type RequiredStop struct {
	Type           string  `json:"type"`
	Location       Point   `json:"location"`
	MilesFromStart float64 `json:"milesFromStart"`
	DurationHours  float64 `json:"durationHours,omitempty"`
	Reason         string  `json:"reason"`
}

// RoutePlan is the response of a route computation: the route itself plus
// the fuel and rest stops the planner derived from it.
type RoutePlan struct {
	Route     Route          `json:"route"`
	FuelStops []RequiredStop `json:"fuelStops"`
	RestStops []RequiredStop `json:"restStops"`
}
