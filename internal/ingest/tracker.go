package ingest

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Tracker accumulates the job IDs seen for each company between
// reconciliation sweeps. Workers add IDs as postings flow through the
// pipeline; the scheduler drains a company's set when it reconciles.
// Redis-backed so the accumulator survives worker restarts.
type Tracker struct {
	client *redis.Client
	prefix string
}

// NewTracker creates a Redis-backed ID tracker.
func NewTracker(client *redis.Client, prefix string) *Tracker {
	if prefix == "" {
		prefix = "ingest:current"
	}
	return &Tracker{client: client, prefix: prefix}
}

// Add records job IDs seen for a company in the current cycle.
func (t *Tracker) Add(ctx context.Context, company string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	pipe := t.client.Pipeline()
	pipe.SAdd(ctx, t.key(company), members...)
	pipe.SAdd(ctx, t.prefix+":companies", company)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("track ids: %w", err)
	}
	return nil
}

// Companies lists every company with tracked IDs.
func (t *Tracker) Companies(ctx context.Context) ([]string, error) {
	companies, err := t.client.SMembers(ctx, t.prefix+":companies").Result()
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// Drain returns and clears the tracked IDs for a company.
func (t *Tracker) Drain(ctx context.Context, company string) ([]string, error) {
	key := t.key(company)

	pipe := t.client.TxPipeline()
	members := pipe.SMembers(ctx, key)
	pipe.Del(ctx, key)
	pipe.SRem(ctx, t.prefix+":companies", company)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("drain ids: %w", err)
	}

	return members.Val(), nil
}

func (t *Tracker) key(company string) string {
	return fmt.Sprintf("%s:%s", t.prefix, company)
}
