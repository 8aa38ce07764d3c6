package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// Consumer consumes normalized jobs from the Redis queue
type Consumer struct {
	client    *redis.Client
	queueName string
	timeout   time.Duration
}

// NewConsumer creates a new queue consumer
func NewConsumer(client *redis.Client, queueName string, timeout time.Duration) *Consumer {
	if queueName == "" {
		queueName = "jobs:normalized"
	}
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &Consumer{
		client:    client,
		queueName: queueName,
		timeout:   timeout,
	}
}

// ConsumeBatch consumes up to maxBatch jobs from the queue
// Uses BRPOP to block-wait for first item (prevents CPU spinning)
// Then uses RPOP to quickly grab remaining items for the batch
func (c *Consumer) ConsumeBatch(ctx context.Context, maxBatch int) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0, maxBatch)

	// First item: block until available
	result, err := c.client.BRPop(ctx, c.timeout, c.queueName).Result()
	if err != nil {
		if err == redis.Nil {
			return jobs, nil // Timeout, no jobs
		}
		return nil, fmt.Errorf("brpop: %w", err)
	}

	if len(result) >= 2 {
		var job domain.Job
		if err := json.Unmarshal([]byte(result[1]), &job); err == nil {
			jobs = append(jobs, &job)
		}
	}

	// Remaining items: non-blocking RPOP to fill the batch
	for i := 1; i < maxBatch; i++ {
		result, err := c.client.RPop(ctx, c.queueName).Result()
		if err != nil {
			if err == redis.Nil {
				break // No more jobs
			}
			return jobs, fmt.Errorf("rpop: %w", err)
		}

		var job domain.Job
		if err := json.Unmarshal([]byte(result), &job); err != nil {
			continue // Skip malformed jobs
		}

		jobs = append(jobs, &job)
	}

	return jobs, nil
}
