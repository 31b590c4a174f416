package trip

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository for
// testing and local development.
type InMemoryRepository struct {
	mu    sync.RWMutex
	trips map[string]*Trip
}

// NewInMemoryRepository creates a new in-memory trip repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{trips: make(map[string]*Trip)}
}

// Get retrieves a trip by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, ok := r.trips[id]
	if !ok {
		return nil, ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

// GetByDriverAndID retrieves a trip by driver ID and trip ID.
func (r *InMemoryRepository) GetByDriverAndID(_ context.Context, driverID, tripID string) (*Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	trip, ok := r.trips[tripID]
	if !ok || trip.DriverID != driverID {
		return nil, ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

// List retrieves all trips for a driver, newest first.
func (r *InMemoryRepository) List(_ context.Context, driverID string, opts ListOptions) (*ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	var trips []*Trip
	for _, trip := range r.trips {
		if trip.DriverID == driverID {
			copied := *trip
			trips = append(trips, &copied)
		}
	}
	sort.Slice(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})

	result := &ListResult{Items: trips}
	if len(trips) > limit {
		result.Items = trips[:limit]
		result.NextCursor = trips[limit-1].ID
	}
	return result, nil
}

// ListIDsByStatus retrieves the IDs of all trips in the given status.
func (r *InMemoryRepository) ListIDsByStatus(_ context.Context, status Status) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, trip := range r.trips {
		if trip.Status == status {
			ids = append(ids, trip.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Create creates a new trip.
func (r *InMemoryRepository) Create(_ context.Context, trip *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *trip
	r.trips[trip.ID] = &stored
	return nil
}

// Update updates an existing trip.
func (r *InMemoryRepository) Update(_ context.Context, trip *Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[trip.ID]; !ok {
		return ErrTripNotFound
	}
	stored := *trip
	r.trips[trip.ID] = &stored
	return nil
}

// Delete deletes a trip by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.trips[id]; !ok {
		return ErrTripNotFound
	}
	delete(r.trips, id)
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
