package logbook

import (
	"context"
	"sort"
	"sync"
)

// InMemoryLogRepository is an in-memory implementation of LogRepository for
// testing and local development.
type InMemoryLogRepository struct {
	mu   sync.RWMutex
	logs map[string]*DailyLog
}

// NewInMemoryLogRepository creates a new in-memory daily log repository.
func NewInMemoryLogRepository() *InMemoryLogRepository {
	return &InMemoryLogRepository{logs: make(map[string]*DailyLog)}
}

// Create creates a new daily log.
func (r *InMemoryLogRepository) Create(_ context.Context, log *DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	date := log.Date.Format("2006-01-02")
	for _, existing := range r.logs {
		if existing.TripID == log.TripID && existing.Date.Format("2006-01-02") == date {
			return ErrDuplicateLogDate
		}
	}

	stored := *log
	r.logs[log.ID] = &stored
	return nil
}

// Get retrieves a daily log by ID.
func (r *InMemoryLogRepository) Get(_ context.Context, id string) (*DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	log, ok := r.logs[id]
	if !ok {
		return nil, ErrLogNotFound
	}
	copied := *log
	return &copied, nil
}

// GetByTripAndDate retrieves the log a trip has for a calendar date.
func (r *InMemoryLogRepository) GetByTripAndDate(_ context.Context, tripID, date string) (*DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, log := range r.logs {
		if log.TripID == tripID && log.Date.Format("2006-01-02") == date {
			copied := *log
			return &copied, nil
		}
	}
	return nil, ErrLogNotFound
}

// ListByTrip retrieves all logs of a trip ordered by date.
func (r *InMemoryLogRepository) ListByTrip(_ context.Context, tripID string) ([]*DailyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var logs []*DailyLog
	for _, log := range r.logs {
		if log.TripID == tripID {
			copied := *log
			logs = append(logs, &copied)
		}
	}
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})
	return logs, nil
}

// Update persists a log.
func (r *InMemoryLogRepository) Update(_ context.Context, log *DailyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.logs[log.ID]; !ok {
		return ErrLogNotFound
	}
	stored := *log
	r.logs[log.ID] = &stored
	return nil
}

// Delete removes a log by ID.
func (r *InMemoryLogRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.logs[id]; !ok {
		return ErrLogNotFound
	}
	delete(r.logs, id)
	return nil
}

// InMemoryActivityRepository is an in-memory implementation of
// ActivityRepository. LatestByTrip and DrivingMinutesByTrip need the log
// repository to resolve which logs belong to a trip.
type InMemoryActivityRepository struct {
	mu         sync.RWMutex
	activities map[string]*Activity
	logs       *InMemoryLogRepository
}

// NewInMemoryActivityRepository creates a new in-memory activity repository.
func NewInMemoryActivityRepository(logs *InMemoryLogRepository) *InMemoryActivityRepository {
	return &InMemoryActivityRepository{
		activities: make(map[string]*Activity),
		logs:       logs,
	}
}

// Create creates a new activity.
func (r *InMemoryActivityRepository) Create(_ context.Context, activity *Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *activity
	r.activities[activity.ID] = &stored
	return nil
}

// Get retrieves an activity by ID.
func (r *InMemoryActivityRepository) Get(_ context.Context, id string) (*Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	activity, ok := r.activities[id]
	if !ok {
		return nil, ErrActivityNotFound
	}
	copied := *activity
	return &copied, nil
}

// ListByLog retrieves a log's activities ordered by sequence, then start time.
func (r *InMemoryActivityRepository) ListByLog(_ context.Context, logID string) ([]*Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var activities []*Activity
	for _, activity := range r.activities {
		if activity.DailyLogID == logID {
			copied := *activity
			activities = append(activities, &copied)
		}
	}
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Sequence != activities[j].Sequence {
			return activities[i].Sequence < activities[j].Sequence
		}
		return activities[i].StartTime < activities[j].StartTime
	})
	return activities, nil
}

// Update persists an activity.
func (r *InMemoryActivityRepository) Update(_ context.Context, activity *Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.activities[activity.ID]; !ok {
		return ErrActivityNotFound
	}
	stored := *activity
	r.activities[activity.ID] = &stored
	return nil
}

// Delete removes an activity by ID.
func (r *InMemoryActivityRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.activities[id]; !ok {
		return ErrActivityNotFound
	}
	delete(r.activities, id)
	return nil
}

// LatestByTrip retrieves the most recent activity across a trip's logs.
func (r *InMemoryActivityRepository) LatestByTrip(ctx context.Context, tripID string) (*Activity, error) {
	logs, err := r.logs.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var latest *Activity
	for _, log := range logs {
		activities, err := r.ListByLog(ctx, log.ID)
		if err != nil {
			return nil, err
		}
		if len(activities) > 0 {
			latest = activities[len(activities)-1]
		}
	}
	if latest == nil {
		return nil, ErrActivityNotFound
	}
	return latest, nil
}

// DrivingMinutesByTrip sums the duration of driving activities across a trip.
func (r *InMemoryActivityRepository) DrivingMinutesByTrip(ctx context.Context, tripID string) (int, error) {
	logs, err := r.logs.ListByTrip(ctx, tripID)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, log := range logs {
		activities, err := r.ListByLog(ctx, log.ID)
		if err != nil {
			return 0, err
		}
		for _, activity := range activities {
			if activity.Status == StatusDriving {
				total += activity.DurationMinutes
			}
		}
	}
	return total, nil
}

// Ensure the in-memory repositories implement their interfaces.
var (
	_ LogRepository      = (*InMemoryLogRepository)(nil)
	_ ActivityRepository = (*InMemoryActivityRepository)(nil)
)
