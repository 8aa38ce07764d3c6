package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/project-hirewire/go-aggregator/internal/domain"
	"github.com/project-hirewire/go-aggregator/internal/store"
)

// DefaultMissThreshold closes a posting after this many consecutive
// scrapes where it was missing.
const DefaultMissThreshold = 2

// Reconciler applies the lifecycle phases of an ingest run against the
// store: touch still-active postings, count misses for absent ones, and
// close postings missed too many times in a row.
type Reconciler struct {
	store         store.Store
	missThreshold int
}

// NewReconciler creates a Reconciler backed by the given store.
func NewReconciler(s store.Store, missThreshold int) *Reconciler {
	if missThreshold <= 0 {
		missThreshold = DefaultMissThreshold
	}
	return &Reconciler{
		store:         s,
		missThreshold: missThreshold,
	}
}

// Reconcile diffs the current scrape's IDs for one company against the
// store and applies the lifecycle updates. It returns run metadata; the
// caller decides whether to persist it.
func (r *Reconciler) Reconcile(ctx context.Context, company string, currentIDs []string) (*domain.IngestRun, error) {
	run := &domain.IngestRun{
		RunID:     uuid.NewString(),
		Company:   company,
		StartedAt: time.Now().UTC(),
		JobsSeen:  len(currentIDs),
	}

	activeIDs, err := r.store.ActiveJobIDs(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("load active ids for %s: %w", company, err)
	}

	diff := CalculateDiff(IDSet(currentIDs), activeIDs)
	run.NewJobs = len(diff.New)

	log.Printf("Reconcile %s - new: %d, active: %d, missing: %d",
		company, len(diff.New), len(diff.StillActive), len(diff.Missing))

	now := time.Now().UTC()
	if err := r.store.TouchSeen(ctx, company, diff.StillActive, now); err != nil {
		return nil, fmt.Errorf("touch seen: %w", err)
	}

	closed, err := r.store.MarkMissed(ctx, company, diff.Missing, r.missThreshold, now)
	if err != nil {
		return nil, fmt.Errorf("mark missed: %w", err)
	}
	run.ClosedJobs = len(closed)
	if len(closed) > 0 {
		log.Printf("Reconcile %s - closed %d postings after %d consecutive misses",
			company, len(closed), r.missThreshold)
	}

	run.CompletedAt = time.Now().UTC()
	return run, nil
}

// RecordRun persists run metadata through the store.
func (r *Reconciler) RecordRun(ctx context.Context, run *domain.IngestRun) error {
	return r.store.RecordRun(ctx, run)
}
