// Package worker provides background job processing for driver-x.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TripRefresher is the slice of the trip service the worker needs.
type TripRefresher interface {
	// RefreshDerived recomputes a trip's derived fields from its logbook.
	RefreshDerived(ctx context.Context, tripID string) error

	// ListInProgressIDs returns the IDs of every in-progress trip.
	ListInProgressIDs(ctx context.Context) ([]string, error)
}

// LogRecomputer recomputes a daily log's duty totals from its activities.
type LogRecomputer interface {
	RecomputeTotals(ctx context.Context, logID string) error
}

// RefreshConfig holds configuration for the bulk trip refresh job.
type RefreshConfig struct {
	// Concurrency is the number of trips refreshed in parallel.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for refreshing a single trip.
	// Default: 30 seconds
	Timeout time.Duration
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

// RefreshJob recomputes derived trip fields for every in-progress trip.
// It backstops the per-mutation refresh messages: a missed or dropped
// message is corrected on the next bulk run.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger
	trips  TripRefresher

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	TotalRuns      int64
	TripsRefreshed int64
	TripsFailed    int64

	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config RefreshConfig
	Logger zerolog.Logger
	Trips  TripRefresher
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultRefreshConfig().Concurrency
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRefreshConfig().Timeout
	}

	return &RefreshJob{
		config:  config,
		logger:  cfg.Logger,
		trips:   cfg.Trips,
		metrics: &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a bulk refresh run.
type RefreshResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalTrips int
	Successful int
	Failed     int
	Errors     []RefreshError
}

// RefreshError represents an error refreshing one trip.
type RefreshError struct {
	TripID string
	Error  string
}

// Run refreshes every in-progress trip with bounded concurrency.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{StartTime: startTime}

	ids, err := j.trips.ListInProgressIDs(ctx)
	if err != nil {
		j.logger.Error().Err(err).Msg("failed to list in-progress trips")
		result.Errors = append(result.Errors, RefreshError{Error: err.Error()})
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		return result
	}
	result.TotalTrips = len(ids)

	j.logger.Info().
		Int("total_trips", result.TotalTrips).
		Int("concurrency", j.config.Concurrency).
		Msg("starting trip refresh job")

	tripsChan := make(chan string, len(ids))
	resultsChan := make(chan tripResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.refreshWorker(ctx, tripsChan, resultsChan)
		}()
	}

	for _, id := range ids {
		tripsChan <- id
	}
	close(tripsChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for tr := range resultsChan {
		if tr.err == nil {
			result.Successful++
		} else {
			result.Failed++
			result.Errors = append(result.Errors, RefreshError{
				TripID: tr.tripID,
				Error:  tr.err.Error(),
			})
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("trip refresh job completed")

	return result
}

type tripResult struct {
	tripID string
	err    error
}

func (j *RefreshJob) refreshWorker(ctx context.Context, trips <-chan string, results chan<- tripResult) {
	for tripID := range trips {
		select {
		case <-ctx.Done():
			return
		default:
			results <- tripResult{tripID: tripID, err: j.refreshTrip(ctx, tripID)}
		}
	}
}

func (j *RefreshJob) refreshTrip(ctx context.Context, tripID string) error {
	tripCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	return j.trips.RefreshDerived(tripCtx, tripID)
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.TripsRefreshed += int64(result.Successful)
	j.metrics.TripsFailed += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		TripsRefreshed:  j.metrics.TripsRefreshed,
		TripsFailed:     j.metrics.TripsFailed,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"trips_refreshed":   m.TripsRefreshed,
		"trips_failed":      m.TripsFailed,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
