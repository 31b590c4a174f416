package logbook

import "context"

// LogRepository defines the interface for daily log persistence.
type LogRepository interface {
	// Create creates a new daily log. Returns ErrDuplicateLogDate when the
	// trip already has a log for the same date.
	Create(ctx context.Context, log *DailyLog) error

	// Get retrieves a daily log by ID. Returns ErrLogNotFound when absent.
	Get(ctx context.Context, id string) (*DailyLog, error)

	// GetByTripAndDate retrieves the log a trip has for a calendar date
	// ("2006-01-02"). Returns ErrLogNotFound when absent.
	GetByTripAndDate(ctx context.Context, tripID, date string) (*DailyLog, error)

	// ListByTrip retrieves all logs of a trip ordered by date ascending.
	ListByTrip(ctx context.Context, tripID string) ([]*DailyLog, error)

	// Update persists header fields, duty totals and mileage of a log.
	Update(ctx context.Context, log *DailyLog) error

	// Delete removes a log and, through the schema, its activities.
	Delete(ctx context.Context, id string) error
}

// ActivityRepository defines the interface for activity persistence.
type ActivityRepository interface {
	// Create creates a new activity.
	Create(ctx context.Context, activity *Activity) error

	// Get retrieves an activity by ID. Returns ErrActivityNotFound when absent.
	Get(ctx context.Context, id string) (*Activity, error)

	// ListByLog retrieves a log's activities ordered by sequence, then
	// start time.
	ListByLog(ctx context.Context, logID string) ([]*Activity, error)

	// Update persists an activity.
	Update(ctx context.Context, activity *Activity) error

	// Delete removes an activity by ID.
	Delete(ctx context.Context, id string) error

	// LatestByTrip retrieves the activity with the highest (log date,
	// sequence) across all logs of a trip. Returns ErrActivityNotFound when
	// the trip has no activities.
	LatestByTrip(ctx context.Context, tripID string) (*Activity, error)

	// DrivingMinutesByTrip sums the duration of all driving activities
	// across a trip's logs.
	DrivingMinutesByTrip(ctx context.Context, tripID string) (int, error)
}
