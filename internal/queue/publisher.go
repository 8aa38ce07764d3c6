package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// Publisher is the ingestion edge of the pipeline: external ATS adapters
// hand it normalized jobs and it pushes them onto the Redis queue the
// worker drains. Jobs are marshaled one per list entry so the consumer
// can batch freely.
type Publisher struct {
	client    *redis.Client
	queueName string
}

// NewPublisher creates a publisher for the named queue.
func NewPublisher(client *redis.Client, queueName string) *Publisher {
	if queueName == "" {
		queueName = "jobs:normalized"
	}
	return &Publisher{
		client:    client,
		queueName: queueName,
	}
}

// PublishBatch pushes jobs onto the queue in one pipelined round trip.
// A marshal failure aborts the whole batch before anything is pushed.
func (p *Publisher) PublishBatch(ctx context.Context, jobs []*domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	payloads := make([][]byte, len(jobs))
	for i, job := range jobs {
		data, err := json.Marshal(job)
		if err != nil {
			return fmt.Errorf("marshal job %s: %w", job.Key(), err)
		}
		payloads[i] = data
	}

	pipe := p.client.Pipeline()
	for _, data := range payloads {
		pipe.LPush(ctx, p.queueName, data)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("pipeline exec: %w", err)
	}
	return nil
}

// QueueLength returns the number of jobs waiting on the queue.
func (p *Publisher) QueueLength(ctx context.Context) (int64, error) {
	return p.client.LLen(ctx, p.queueName).Result()
}
