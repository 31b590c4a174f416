package logbook

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLogRepository is a PostgreSQL implementation of LogRepository.
type PostgresLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLogRepository creates a new PostgreSQL daily log repository.
func NewPostgresLogRepository(pool *pgxpool.Pool) *PostgresLogRepository {
	return &PostgresLogRepository{pool: pool}
}

const logColumns = `
	id, trip_id, date,
	total_off_duty_hours, total_sleeper_berth_hours,
	total_driving_hours, total_on_duty_hours,
	driver_name, driver_signature, co_driver_name,
	home_terminal, carrier_name, tractor_number, trailer_numbers,
	shipper_name, commodity, shipping_doc_numbers,
	total_miles_driven, total_truck_mileage,
	created_at, updated_at
`

// Create creates a new daily log.
func (r *PostgresLogRepository) Create(ctx context.Context, log *DailyLog) error {
	query := `
		INSERT INTO daily_logs (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.pool.Exec(ctx, query,
		log.ID,
		log.TripID,
		log.Date,
		log.TotalOffDutyHours,
		log.TotalSleeperBerthHours,
		log.TotalDrivingHours,
		log.TotalOnDutyHours,
		log.DriverName,
		log.DriverSignature,
		log.CoDriverName,
		log.HomeTerminal,
		log.CarrierName,
		log.TractorNumber,
		log.TrailerNumbers,
		log.ShipperName,
		log.Commodity,
		log.ShippingDocNumbers,
		log.TotalMilesDriven,
		log.TotalTruckMileage,
		log.CreatedAt,
		log.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateLogDate
	}
	return err
}

// Get retrieves a daily log by ID.
func (r *PostgresLogRepository) Get(ctx context.Context, id string) (*DailyLog, error) {
	query := `SELECT ` + logColumns + ` FROM daily_logs WHERE id = $1`
	return r.scanLog(r.pool.QueryRow(ctx, query, id))
}

// GetByTripAndDate retrieves the log a trip has for a calendar date.
func (r *PostgresLogRepository) GetByTripAndDate(ctx context.Context, tripID, date string) (*DailyLog, error) {
	query := `SELECT ` + logColumns + ` FROM daily_logs WHERE trip_id = $1 AND date = $2::date`
	return r.scanLog(r.pool.QueryRow(ctx, query, tripID, date))
}

// ListByTrip retrieves all logs of a trip ordered by date.
func (r *PostgresLogRepository) ListByTrip(ctx context.Context, tripID string) ([]*DailyLog, error) {
	query := `SELECT ` + logColumns + ` FROM daily_logs WHERE trip_id = $1 ORDER BY date ASC`

	rows, err := r.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*DailyLog
	for rows.Next() {
		log, err := r.scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// Update persists header fields, duty totals and mileage of a log.
func (r *PostgresLogRepository) Update(ctx context.Context, log *DailyLog) error {
	query := `
		UPDATE daily_logs SET
			total_off_duty_hours = $2,
			total_sleeper_berth_hours = $3,
			total_driving_hours = $4,
			total_on_duty_hours = $5,
			driver_name = $6,
			driver_signature = $7,
			co_driver_name = $8,
			home_terminal = $9,
			carrier_name = $10,
			tractor_number = $11,
			trailer_numbers = $12,
			shipper_name = $13,
			commodity = $14,
			shipping_doc_numbers = $15,
			total_miles_driven = $16,
			total_truck_mileage = $17,
			updated_at = $18
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		log.ID,
		log.TotalOffDutyHours,
		log.TotalSleeperBerthHours,
		log.TotalDrivingHours,
		log.TotalOnDutyHours,
		log.DriverName,
		log.DriverSignature,
		log.CoDriverName,
		log.HomeTerminal,
		log.CarrierName,
		log.TractorNumber,
		log.TrailerNumbers,
		log.ShipperName,
		log.Commodity,
		log.ShippingDocNumbers,
		log.TotalMilesDriven,
		log.TotalTruckMileage,
		log.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLogNotFound
	}
	return nil
}

// Delete removes a log. Activities go with it via ON DELETE CASCADE.
func (r *PostgresLogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM daily_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLogNotFound
	}
	return nil
}

// scanLog scans a daily log from a row.
func (r *PostgresLogRepository) scanLog(row pgx.Row) (*DailyLog, error) {
	var log DailyLog
	err := row.Scan(
		&log.ID,
		&log.TripID,
		&log.Date,
		&log.TotalOffDutyHours,
		&log.TotalSleeperBerthHours,
		&log.TotalDrivingHours,
		&log.TotalOnDutyHours,
		&log.DriverName,
		&log.DriverSignature,
		&log.CoDriverName,
		&log.HomeTerminal,
		&log.CarrierName,
		&log.TractorNumber,
		&log.TrailerNumbers,
		&log.ShipperName,
		&log.Commodity,
		&log.ShippingDocNumbers,
		&log.TotalMilesDriven,
		&log.TotalTruckMileage,
		&log.CreatedAt,
		&log.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// PostgresActivityRepository is a PostgreSQL implementation of ActivityRepository.
type PostgresActivityRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresActivityRepository creates a new PostgreSQL activity repository.
func NewPostgresActivityRepository(pool *pgxpool.Pool) *PostgresActivityRepository {
	return &PostgresActivityRepository{pool: pool}
}

const activityColumns = `
	id, daily_log_id, status, start_time, end_time, duration_minutes,
	location_address, location_city, location_state, location_lat, location_lon,
	end_location_address, end_location_city, end_location_state,
	end_location_lat, end_location_lon,
	remark, miles_driven, sequence, created_at, updated_at
`

// Create creates a new activity.
func (r *PostgresActivityRepository) Create(ctx context.Context, activity *Activity) error {
	query := `
		INSERT INTO activities (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	var endAddr, endCity, endState *string
	var endLat, endLon *float64
	if activity.EndLocation != nil {
		endAddr = &activity.EndLocation.Address
		endCity = &activity.EndLocation.City
		endState = &activity.EndLocation.State
		endLat = activity.EndLocation.Lat
		endLon = activity.EndLocation.Lon
	}

	_, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.DailyLogID,
		string(activity.Status),
		activity.StartTime,
		activity.EndTime,
		activity.DurationMinutes,
		activity.Location.Address,
		activity.Location.City,
		activity.Location.State,
		activity.Location.Lat,
		activity.Location.Lon,
		endAddr,
		endCity,
		endState,
		endLat,
		endLon,
		activity.Remark,
		activity.MilesDriven,
		activity.Sequence,
		activity.CreatedAt,
		activity.UpdatedAt,
	)
	return err
}

// Get retrieves an activity by ID.
func (r *PostgresActivityRepository) Get(ctx context.Context, id string) (*Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = $1`
	return r.scanActivity(r.pool.QueryRow(ctx, query, id))
}

// ListByLog retrieves a log's activities ordered by sequence, then start time.
func (r *PostgresActivityRepository) ListByLog(ctx context.Context, logID string) ([]*Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE daily_log_id = $1 ORDER BY sequence ASC, start_time ASC`

	rows, err := r.pool.Query(ctx, query, logID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*Activity
	for rows.Next() {
		activity, err := r.scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

// Update persists an activity.
func (r *PostgresActivityRepository) Update(ctx context.Context, activity *Activity) error {
	query := `
		UPDATE activities SET
			status = $2,
			start_time = $3,
			end_time = $4,
			duration_minutes = $5,
			location_address = $6,
			location_city = $7,
			location_state = $8,
			location_lat = $9,
			location_lon = $10,
			end_location_address = $11,
			end_location_city = $12,
			end_location_state = $13,
			end_location_lat = $14,
			end_location_lon = $15,
			remark = $16,
			miles_driven = $17,
			sequence = $18,
			updated_at = $19
		WHERE id = $1
	`

	var endAddr, endCity, endState *string
	var endLat, endLon *float64
	if activity.EndLocation != nil {
		endAddr = &activity.EndLocation.Address
		endCity = &activity.EndLocation.City
		endState = &activity.EndLocation.State
		endLat = activity.EndLocation.Lat
		endLon = activity.EndLocation.Lon
	}

	result, err := r.pool.Exec(ctx, query,
		activity.ID,
		string(activity.Status),
		activity.StartTime,
		activity.EndTime,
		activity.DurationMinutes,
		activity.Location.Address,
		activity.Location.City,
		activity.Location.State,
		activity.Location.Lat,
		activity.Location.Lon,
		endAddr,
		endCity,
		endState,
		endLat,
		endLon,
		activity.Remark,
		activity.MilesDriven,
		activity.Sequence,
		activity.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// Delete removes an activity by ID.
func (r *PostgresActivityRepository) Delete(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// LatestByTrip retrieves the most recent activity across a trip's logs.
func (r *PostgresActivityRepository) LatestByTrip(ctx context.Context, tripID string) (*Activity, error) {
	query := `
		SELECT ` + activityColumns + `
		FROM activities a
		JOIN daily_logs l ON l.id = a.daily_log_id
		WHERE l.trip_id = $1
		ORDER BY l.date DESC, a.sequence DESC
		LIMIT 1
	`

	activity, err := r.scanActivity(r.pool.QueryRow(ctx, query, tripID))
	if err != nil {
		if errors.Is(err, ErrActivityNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return activity, nil
}

// DrivingMinutesByTrip sums the duration of driving activities across a trip.
func (r *PostgresActivityRepository) DrivingMinutesByTrip(ctx context.Context, tripID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(a.duration_minutes), 0)
		FROM activities a
		JOIN daily_logs l ON l.id = a.daily_log_id
		WHERE l.trip_id = $1 AND a.status = $2
	`

	var minutes int
	err := r.pool.QueryRow(ctx, query, tripID, string(StatusDriving)).Scan(&minutes)
	return minutes, err
}

// scanActivity scans an activity from a row.
func (r *PostgresActivityRepository) scanActivity(row pgx.Row) (*Activity, error) {
	var activity Activity
	var status string
	var endAddr, endCity, endState *string
	var endLat, endLon *float64

	err := row.Scan(
		&activity.ID,
		&activity.DailyLogID,
		&status,
		&activity.StartTime,
		&activity.EndTime,
		&activity.DurationMinutes,
		&activity.Location.Address,
		&activity.Location.City,
		&activity.Location.State,
		&activity.Location.Lat,
		&activity.Location.Lon,
		&endAddr,
		&endCity,
		&endState,
		&endLat,
		&endLon,
		&activity.Remark,
		&activity.MilesDriven,
		&activity.Sequence,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}

	activity.Status = ActivityStatus(status)
	if endAddr != nil || endCity != nil || endState != nil || endLat != nil || endLon != nil {
		end := Location{Lat: endLat, Lon: endLon}
		if endAddr != nil {
			end.Address = *endAddr
		}
		if endCity != nil {
			end.City = *endCity
		}
		if endState != nil {
			end.State = *endState
		}
		activity.EndLocation = &end
	}

	return &activity, nil
}

// Ensure the Postgres repositories implement their interfaces.
var (
	_ LogRepository      = (*PostgresLogRepository)(nil)
	_ ActivityRepository = (*PostgresActivityRepository)(nil)
)
