// Package stops derives the fuel and rest stops a route requires from its
// geometry and total distance.
package stops

import (
	"fmt"

	"github.com/ndungtse/driver-x/pkg/geo"
)

// StopType identifies the kind of required stop.
type StopType string

const (
	StopTypeFuel StopType = "fuel"
	StopTypeRest StopType = "10hr_rest"
)

// RequiredStop is a suggested stop along a route.
type RequiredStop struct {
	Type           StopType
	Location       geo.Point
	MilesFromStart float64
	DurationHours  float64
	Reason         string
}

// Plan is the set of stops a route requires, each list ascending by
// distance from the start.
type Plan struct {
	FuelStops []RequiredStop
	RestStops []RequiredStop
}

// PlannerConfig holds the stop policy. Zero values fall back to the defaults.
type PlannerConfig struct {
	// FuelIntervalMiles is the distance between fuel stops.
	FuelIntervalMiles float64
	// RestIntervalMiles is the driving distance covered before a long rest
	// is due.
	RestIntervalMiles float64
	// RestDurationHours is the length of each rest stop.
	RestDurationHours float64
}

// DefaultPlannerConfig returns the standard policy: fuel every 1000 miles,
// a 10-hour rest every 605 miles (11 hours of driving at 55 mph).
func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		FuelIntervalMiles: 1000,
		RestIntervalMiles: 605,
		RestDurationHours: 10,
	}
}

// Planner places required stops along a route.
type Planner struct {
	cfg PlannerConfig
}

// NewPlanner creates a planner. Zero-value config fields fall back to
// DefaultPlannerConfig.
func NewPlanner(cfg PlannerConfig) *Planner {
	def := DefaultPlannerConfig()
	if cfg.FuelIntervalMiles <= 0 {
		cfg.FuelIntervalMiles = def.FuelIntervalMiles
	}
	if cfg.RestIntervalMiles <= 0 {
		cfg.RestIntervalMiles = def.RestIntervalMiles
	}
	if cfg.RestDurationHours <= 0 {
		cfg.RestDurationHours = def.RestDurationHours
	}
	return &Planner{cfg: cfg}
}

// Plan places stops at every policy interval strictly inside the route's
// distance. Stop positions are interpolated by cumulative arc length along
// the path, scaled so the path's own length maps onto the reported distance.
// A route with no path or a non-positive distance yields an empty plan.
func (p *Planner) Plan(path []geo.Point, distanceMiles float64) Plan {
	plan := Plan{
		FuelStops: []RequiredStop{},
		RestStops: []RequiredStop{},
	}
	if distanceMiles <= 0 || len(path) == 0 {
		return plan
	}

	cum := geo.CumulativeMiles(path)
	scale := cum[len(cum)-1] / distanceMiles

	fuelReason := fmt.Sprintf("Fueling required every %.0f miles", p.cfg.FuelIntervalMiles)
	for miles := p.cfg.FuelIntervalMiles; miles < distanceMiles; miles += p.cfg.FuelIntervalMiles {
		point, ok := geo.PointAlong(path, cum, miles*scale)
		if !ok {
			continue
		}
		plan.FuelStops = append(plan.FuelStops, RequiredStop{
			Type:           StopTypeFuel,
			Location:       point,
			MilesFromStart: miles,
			Reason:         fuelReason,
		})
	}

	restReason := fmt.Sprintf("%.0f-hour rest required after %.0f miles of driving",
		p.cfg.RestDurationHours, p.cfg.RestIntervalMiles)
	for miles := p.cfg.RestIntervalMiles; miles < distanceMiles; miles += p.cfg.RestIntervalMiles {
		point, ok := geo.PointAlong(path, cum, miles*scale)
		if !ok {
			continue
		}
		plan.RestStops = append(plan.RestStops, RequiredStop{
			Type:           StopTypeRest,
			Location:       point,
			MilesFromStart: miles,
			DurationHours:  p.cfg.RestDurationHours,
			Reason:         restReason,
		})
	}

	return plan
}
