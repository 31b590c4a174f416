package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
	"github.com/rs/zerolog"
)

// Publisher enqueues worker jobs on a Pub/Sub topic. The API server uses it
// to hand off derived-field recomputation after logbook writes.
type Publisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	topicName string
	logger    zerolog.Logger
}

// PublisherConfig holds configuration for the job publisher.
type PublisherConfig struct {
	ProjectID string
	TopicName string
	Logger    zerolog.Logger
}

// NewPublisher creates a new job publisher.
func NewPublisher(ctx context.Context, cfg PublisherConfig) (*Publisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("creating pubsub client: %w", err)
	}

	return &Publisher{
		client:    client,
		publisher: client.Publisher(cfg.TopicName),
		topicName: cfg.TopicName,
		logger:    cfg.Logger,
	}, nil
}

// PublishTripRefresh enqueues a refresh of one trip's derived fields.
func (p *Publisher) PublishTripRefresh(ctx context.Context, tripID string) error {
	return p.publish(ctx, JobMessage{JobType: JobTripRefresh, TripID: tripID})
}

// PublishLogRecompute enqueues a recompute of one daily log's totals.
func (p *Publisher) PublishLogRecompute(ctx context.Context, logID string) error {
	return p.publish(ctx, JobMessage{JobType: JobLogRecompute, LogID: logID})
}

// PublishTripRefreshAll enqueues a bulk refresh of all in-progress trips.
func (p *Publisher) PublishTripRefreshAll(ctx context.Context) error {
	return p.publish(ctx, JobMessage{JobType: JobTripRefreshAll})
}

func (p *Publisher) publish(ctx context.Context, job JobMessage) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encoding job message: %w", err)
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{Data: data})
	id, err := result.Get(ctx)
	if err != nil {
		return fmt.Errorf("publishing %s job: %w", job.JobType, err)
	}

	p.logger.Debug().
		Str("topic", p.topicName).
		Str("job_type", job.JobType).
		Str("message_id", id).
		Msg("job published")
	return nil
}

// Close flushes pending messages and closes the client.
func (p *Publisher) Close() error {
	p.publisher.Stop()
	return p.client.Close()
}
