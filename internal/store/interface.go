package store

import (
	"context"
	"time"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// Indexer defines the interface for job indexing backends
type Indexer interface {
	// BulkIndex indexes multiple jobs at once
	BulkIndex(ctx context.Context, jobs []*domain.Job) error
}

// Store is the lifecycle-aware persistence backend. It extends bulk
// indexing with the queries the incremental reconciler needs: which
// postings are currently open per company, touch them when seen again,
// and count misses until a posting is closed.
type Store interface {
	Indexer

	// ActiveJobIDs returns the IDs of all OPEN postings for a company.
	ActiveJobIDs(ctx context.Context, company string) (map[string]bool, error)

	// TouchSeen resets consecutive misses and bumps last_seen for the
	// given postings.
	TouchSeen(ctx context.Context, company string, ids []string, seenAt time.Time) error

	// MarkMissed increments consecutive misses for the given postings
	// and closes any that reach the threshold. Returns the IDs closed.
	MarkMissed(ctx context.Context, company string, ids []string, threshold int, closedAt time.Time) ([]string, error)

	// RecordRun persists ingest-run metadata.
	RecordRun(ctx context.Context, run *domain.IngestRun) error

	// OpenJobs loads every OPEN posting, most recent first.
	OpenJobs(ctx context.Context) ([]*domain.Job, error)
}
