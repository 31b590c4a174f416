package trip

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL trip repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const tripColumns = `
	id, driver_id, status,
	current_name, current_city, current_state, current_lat, current_lon,
	pickup_name, pickup_city, pickup_state, pickup_lat, pickup_lon,
	dropoff_name, dropoff_city, dropoff_state, dropoff_lat, dropoff_lon,
	driver_name, carrier_name, home_terminal,
	current_cycle_hours, total_distance, estimated_duration,
	start_datetime, end_datetime,
	created_at, updated_at
`

// Get retrieves a trip by ID.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`
	return r.scanTrip(r.pool.QueryRow(ctx, query, id))
}

// GetByDriverAndID retrieves a trip by driver ID and trip ID.
func (r *PostgresRepository) GetByDriverAndID(ctx context.Context, driverID, tripID string) (*Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND driver_id = $2`
	return r.scanTrip(r.pool.QueryRow(ctx, query, tripID, driverID))
}

// List retrieves all trips for a driver with pagination.
func (r *PostgresRepository) List(ctx context.Context, driverID string, opts ListOptions) (*ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	// Fetch one extra to determine if there are more results
	fetchLimit := limit + 1

	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE driver_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, driverID, fetchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		trip, err := r.scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := &ListResult{Items: trips}
	if len(trips) > limit {
		result.Items = trips[:limit]
		result.NextCursor = trips[limit-1].ID
	}
	return result, nil
}

// ListIDsByStatus retrieves the IDs of all trips in the given status.
func (r *PostgresRepository) ListIDsByStatus(ctx context.Context, status Status) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM trips WHERE status = $1 ORDER BY created_at`, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Create creates a new trip.
func (r *PostgresRepository) Create(ctx context.Context, trip *Trip) error {
	query := `
		INSERT INTO trips (` + tripColumns + `)
		VALUES (
			$1, $2, $3,
			$4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18,
			$19, $20, $21,
			$22, $23, $24,
			$25, $26,
			$27, $28
		)
	`

	_, err := r.pool.Exec(ctx, query,
		trip.ID, trip.DriverID, string(trip.Status),
		trip.CurrentLocation.Name, trip.CurrentLocation.City, trip.CurrentLocation.State, trip.CurrentLocation.Lat, trip.CurrentLocation.Lon,
		trip.PickupLocation.Name, trip.PickupLocation.City, trip.PickupLocation.State, trip.PickupLocation.Lat, trip.PickupLocation.Lon,
		trip.DropoffLocation.Name, trip.DropoffLocation.City, trip.DropoffLocation.State, trip.DropoffLocation.Lat, trip.DropoffLocation.Lon,
		trip.DriverName, trip.CarrierName, trip.HomeTerminal,
		trip.CurrentCycleHours, trip.TotalDistance, trip.EstimatedDuration,
		trip.StartDatetime, trip.EndDatetime,
		trip.CreatedAt, trip.UpdatedAt,
	)
	return err
}

// Update updates an existing trip.
func (r *PostgresRepository) Update(ctx context.Context, trip *Trip) error {
	query := `
		UPDATE trips SET
			status = $2,
			current_name = $3, current_city = $4, current_state = $5, current_lat = $6, current_lon = $7,
			pickup_name = $8, pickup_city = $9, pickup_state = $10, pickup_lat = $11, pickup_lon = $12,
			dropoff_name = $13, dropoff_city = $14, dropoff_state = $15, dropoff_lat = $16, dropoff_lon = $17,
			driver_name = $18, carrier_name = $19, home_terminal = $20,
			current_cycle_hours = $21, total_distance = $22, estimated_duration = $23,
			start_datetime = $24, end_datetime = $25,
			updated_at = $26
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		trip.ID, string(trip.Status),
		trip.CurrentLocation.Name, trip.CurrentLocation.City, trip.CurrentLocation.State, trip.CurrentLocation.Lat, trip.CurrentLocation.Lon,
		trip.PickupLocation.Name, trip.PickupLocation.City, trip.PickupLocation.State, trip.PickupLocation.Lat, trip.PickupLocation.Lon,
		trip.DropoffLocation.Name, trip.DropoffLocation.City, trip.DropoffLocation.State, trip.DropoffLocation.Lat, trip.DropoffLocation.Lon,
		trip.DriverName, trip.CarrierName, trip.HomeTerminal,
		trip.CurrentCycleHours, trip.TotalDistance, trip.EstimatedDuration,
		trip.StartDatetime, trip.EndDatetime,
		trip.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTripNotFound
	}
	return nil
}

// Delete deletes a trip by ID.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTripNotFound
	}
	return nil
}

// scanTrip scans a trip from a row.
func (r *PostgresRepository) scanTrip(row pgx.Row) (*Trip, error) {
	var trip Trip
	var status string

	err := row.Scan(
		&trip.ID, &trip.DriverID, &status,
		&trip.CurrentLocation.Name, &trip.CurrentLocation.City, &trip.CurrentLocation.State, &trip.CurrentLocation.Lat, &trip.CurrentLocation.Lon,
		&trip.PickupLocation.Name, &trip.PickupLocation.City, &trip.PickupLocation.State, &trip.PickupLocation.Lat, &trip.PickupLocation.Lon,
		&trip.DropoffLocation.Name, &trip.DropoffLocation.City, &trip.DropoffLocation.State, &trip.DropoffLocation.Lat, &trip.DropoffLocation.Lon,
		&trip.DriverName, &trip.CarrierName, &trip.HomeTerminal,
		&trip.CurrentCycleHours, &trip.TotalDistance, &trip.EstimatedDuration,
		&trip.StartDatetime, &trip.EndDatetime,
		&trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	trip.Status = Status(status)
	return &trip, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
