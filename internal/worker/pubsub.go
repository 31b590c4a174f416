package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// Job types understood by the worker.
const (
	JobTripRefresh    = "trip_refresh"
	JobLogRecompute   = "log_recompute"
	JobTripRefreshAll = "trip_refresh_all"
)

// JobMessage is the wire format of a worker job.
type JobMessage struct {
	JobType string `json:"job_type"`
	TripID  string `json:"trip_id,omitempty"`
	LogID   string `json:"log_id,omitempty"`
}

// PubSubHandler handles Pub/Sub messages for the worker.
type PubSubHandler struct {
	client           *pubsub.Client
	subscriber       *pubsub.Subscriber
	subscriptionName string
	trips            TripRefresher
	logs             LogRecomputer
	refreshJob       *RefreshJob
	logger           zerolog.Logger
}

// PubSubConfig holds configuration for the Pub/Sub handler.
type PubSubConfig struct {
	ProjectID        string
	SubscriptionName string
	Trips            TripRefresher
	Logs             LogRecomputer
	RefreshJob       *RefreshJob
	Logger           zerolog.Logger
}

// NewPubSubHandler creates a new Pub/Sub handler.
func NewPubSubHandler(ctx context.Context, cfg PubSubConfig) (*PubSubHandler, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	subscriber := client.Subscriber(cfg.SubscriptionName)

	// Configure receive settings.
	subscriber.ReceiveSettings.MaxOutstandingMessages = 10
	subscriber.ReceiveSettings.MaxExtension = 10 * time.Minute

	return &PubSubHandler{
		client:           client,
		subscriber:       subscriber,
		subscriptionName: cfg.SubscriptionName,
		trips:            cfg.Trips,
		logs:             cfg.Logs,
		refreshJob:       cfg.RefreshJob,
		logger:           cfg.Logger,
	}, nil
}

// Start begins processing Pub/Sub messages.
func (h *PubSubHandler) Start(ctx context.Context) error {
	h.logger.Info().
		Str("subscription", h.subscriptionName).
		Msg("starting pubsub handler")

	return h.subscriber.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		h.handleMessage(ctx, msg)
	})
}

// Close closes the Pub/Sub client.
func (h *PubSubHandler) Close() error {
	return h.client.Close()
}

func (h *PubSubHandler) handleMessage(ctx context.Context, msg *pubsub.Message) {
	startTime := time.Now()

	logger := h.logger.With().
		Str("message_id", msg.ID).
		Str("publish_time", msg.PublishTime.Format(time.RFC3339)).
		Logger()

	logger.Debug().Msg("received pubsub message")

	var job JobMessage
	if err := json.Unmarshal(msg.Data, &job); err != nil {
		logger.Error().Err(err).Msg("failed to parse message")
		msg.Nack()
		return
	}

	var err error
	switch job.JobType {
	case JobTripRefresh:
		err = h.handleTripRefresh(ctx, job)
	case JobLogRecompute:
		err = h.handleLogRecompute(ctx, job)
	case JobTripRefreshAll:
		err = h.handleTripRefreshAll(ctx)
	default:
		logger.Warn().Str("job_type", job.JobType).Msg("unknown job type")
		msg.Ack() // Ack unknown messages to prevent redelivery
		return
	}

	if err != nil {
		logger.Error().Err(err).Str("job_type", job.JobType).Msg("job failed")
		msg.Nack()
		return
	}

	logger.Info().
		Str("job_type", job.JobType).
		Dur("duration", time.Since(startTime)).
		Msg("job completed successfully")

	msg.Ack()
}

func (h *PubSubHandler) handleTripRefresh(ctx context.Context, job JobMessage) error {
	if job.TripID == "" {
		return fmt.Errorf("trip_refresh message missing trip_id")
	}
	return h.trips.RefreshDerived(ctx, job.TripID)
}

func (h *PubSubHandler) handleLogRecompute(ctx context.Context, job JobMessage) error {
	if job.LogID == "" {
		return fmt.Errorf("log_recompute message missing log_id")
	}
	return h.logs.RecomputeTotals(ctx, job.LogID)
}

func (h *PubSubHandler) handleTripRefreshAll(ctx context.Context) error {
	if h.refreshJob == nil {
		return fmt.Errorf("no refresh job configured")
	}

	result := h.refreshJob.Run(ctx)

	// A partial failure still acks; failed trips are retried on the next
	// scheduled run.
	if result.Failed > result.Successful {
		return fmt.Errorf("too many refresh failures: %d/%d", result.Failed, result.TotalTrips)
	}
	return nil
}
