package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// Deduplicator tracks seen jobs in Redis. Keys follow the posting
// identity: id scoped within source and company.
type Deduplicator struct {
	client     *redis.Client
	prefix     string
	defaultTTL time.Duration
}

// NewDeduplicator creates a new Redis-based deduplicator
func NewDeduplicator(client *redis.Client, prefix string, defaultTTL time.Duration) *Deduplicator {
	if prefix == "" {
		prefix = "job:seen"
	}
	if defaultTTL == 0 {
		defaultTTL = 24 * time.Hour * 30 // 30 days default
	}
	return &Deduplicator{
		client:     client,
		prefix:     prefix,
		defaultTTL: defaultTTL,
	}
}

// CheckResult represents the result of checking a job
type CheckResult int

const (
	// ResultNew - job has never been seen
	ResultNew CheckResult = iota
	// ResultUpdated - job exists but has been updated
	ResultUpdated
	// ResultUnchanged - job exists and is unchanged
	ResultUnchanged
)

// CheckJob checks whether a job needs processing. The change token is an
// opaque per-source value (typically the raw updated-at string); a stored
// token that differs means the posting changed since last seen.
func (d *Deduplicator) CheckJob(ctx context.Context, job *domain.Job, changeToken string) (CheckResult, error) {
	key := d.makeKey(job)

	storedValue, err := d.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ResultNew, nil
	}
	if err != nil {
		return ResultNew, fmt.Errorf("redis get: %w", err)
	}

	if storedValue != changeToken {
		return ResultUpdated, nil
	}

	return ResultUnchanged, nil
}

// MarkSeen records the job's change token with the default TTL.
func (d *Deduplicator) MarkSeen(ctx context.Context, job *domain.Job, changeToken string) error {
	key := d.makeKey(job)
	if err := d.client.Set(ctx, key, changeToken, d.defaultTTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (d *Deduplicator) makeKey(job *domain.Job) string {
	return fmt.Sprintf("%s:%s", d.prefix, job.Key())
}
