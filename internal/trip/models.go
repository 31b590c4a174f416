// Package trip provides trip lifecycle management: creation, start and
// completion, derived-field refresh and route planning orchestration.
package trip

import (
	"errors"
	"time"

	"github.com/ndungtse/driver-x/pkg/geo"
)

// Trip errors.
var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrInvalidTransition = errors.New("invalid trip status transition")
)

// Status represents the lifecycle state of a trip.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Location is a named place on a trip. Coordinates are optional; route
// computation needs them, plain logging does not.
type Location struct {
	Name  string
	City  string
	State string
	Lat   *float64
	Lon   *float64
}

// HasCoordinates reports whether the location can be routed to.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Point returns the location's coordinates. Only valid when HasCoordinates
// is true.
func (l Location) Point() geo.Point {
	return geo.Point{Lat: *l.Lat, Lon: *l.Lon}
}

// Trip represents a driver's trip. CurrentLocation and CurrentCycleHours are
// derived from logged activities and refreshed out of band.
type Trip struct {
	ID       string
	DriverID string
	Status   Status

	CurrentLocation Location
	PickupLocation  Location
	DropoffLocation Location

	DriverName   string
	CarrierName  string
	HomeTerminal string

	CurrentCycleHours float64
	TotalDistance     float64
	EstimatedDuration float64

	StartDatetime *time.Time
	EndDatetime   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
