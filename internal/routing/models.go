// Package routing computes driving routes between trip endpoints through an
// external directions provider, with short-lived caching in front of it.
package routing

import (
	"context"
	"errors"
	"time"

	"github.com/ndungtse/driver-x/pkg/geo"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates no drivable route exists between the given points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrRateLimitExceeded indicates the provider quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidCoordinates indicates the provided coordinates are out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Provider defines the interface for directions providers.
type Provider interface {
	// Directions retrieves a driving route between two points.
	Directions(ctx context.Context, req DirectionsRequest) (*Route, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// DirectionsRequest is the request for computing a route.
type DirectionsRequest struct {
	Origin      geo.Point
	Destination geo.Point
}

// Route is a computed driving route. Routes are ephemeral: they are
// recomputed on demand and never persisted.
type Route struct {
	// Polyline is the encoded geometry (precision 5).
	Polyline string
	// Path is the decoded geometry.
	Path []geo.Point
	// DistanceMiles is the total driving distance.
	DistanceMiles float64
	// DurationHours is the estimated driving time.
	DurationHours float64
	// Bounds is the geographic bounding box of the path.
	Bounds geo.Bounds
	// Provider identifies which provider produced the route.
	Provider string
	// FetchedAt is when the provider answered.
	FetchedAt time.Time
}

// Error provides detailed error information from the routing provider.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is transient and the request can be retried.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrProviderUnavailable) || errors.Is(e.Err, ErrRateLimitExceeded)
}
