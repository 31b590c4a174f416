package trip

import "context"

// ListOptions contains options for listing trips.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListResult contains the results of listing trips.
type ListResult struct {
	Items      []*Trip
	NextCursor string
}

// Repository defines the interface for trip persistence.
type Repository interface {
	// Get retrieves a trip by ID.
	Get(ctx context.Context, id string) (*Trip, error)

	// GetByDriverAndID retrieves a trip by driver ID and trip ID.
	// Returns ErrTripNotFound if the trip doesn't exist or doesn't belong
	// to the driver.
	GetByDriverAndID(ctx context.Context, driverID, tripID string) (*Trip, error)

	// List retrieves all trips for a driver with pagination, newest first.
	List(ctx context.Context, driverID string, opts ListOptions) (*ListResult, error)

	// ListIDsByStatus retrieves the IDs of all trips in the given status,
	// across drivers.
	ListIDsByStatus(ctx context.Context, status Status) ([]string, error)

	// Create creates a new trip.
	Create(ctx context.Context, trip *Trip) error

	// Update updates an existing trip.
	Update(ctx context.Context, trip *Trip) error

	// Delete deletes a trip by ID.
	Delete(ctx context.Context, id string) error
}
