package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/project-hirewire/go-aggregator/internal/domain"
	"github.com/project-hirewire/go-aggregator/internal/ingest"
)

// fakeStore tracks lifecycle state in memory for reconciler tests.
type fakeStore struct {
	open   map[string]int // id -> consecutive misses
	runs   []*domain.IngestRun
	closed []string
}

func newFakeStore(ids ...string) *fakeStore {
	open := make(map[string]int, len(ids))
	for _, id := range ids {
		open[id] = 0
	}
	return &fakeStore{open: open}
}

func (f *fakeStore) BulkIndex(ctx context.Context, jobs []*domain.Job) error {
	for _, j := range jobs {
		f.open[j.ID] = 0
	}
	return nil
}

func (f *fakeStore) ActiveJobIDs(ctx context.Context, company string) (map[string]bool, error) {
	ids := make(map[string]bool, len(f.open))
	for id := range f.open {
		ids[id] = true
	}
	return ids, nil
}

func (f *fakeStore) TouchSeen(ctx context.Context, company string, ids []string, seenAt time.Time) error {
	for _, id := range ids {
		f.open[id] = 0
	}
	return nil
}

func (f *fakeStore) MarkMissed(ctx context.Context, company string, ids []string, threshold int, closedAt time.Time) ([]string, error) {
	var closed []string
	for _, id := range ids {
		if _, ok := f.open[id]; !ok {
			continue
		}
		f.open[id]++
		if f.open[id] >= threshold {
			delete(f.open, id)
			closed = append(closed, id)
		}
	}
	f.closed = append(f.closed, closed...)
	return closed, nil
}

func (f *fakeStore) RecordRun(ctx context.Context, run *domain.IngestRun) error {
	f.runs = append(f.runs, run)
	return nil
}

func (f *fakeStore) OpenJobs(ctx context.Context) ([]*domain.Job, error) {
	return nil, nil
}

func TestReconcile_ClosesAfterThresholdMisses(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore("a", "b", "c")
	r := ingest.NewReconciler(fs, 2)

	// First sweep: "c" is missing once — still open.
	run, err := r.Reconcile(ctx, "acme", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if run.ClosedJobs != 0 {
		t.Errorf("first miss closed %d postings, want 0", run.ClosedJobs)
	}
	if len(fs.closed) != 0 {
		t.Errorf("closed = %v, want none after one miss", fs.closed)
	}

	// Second consecutive miss closes it.
	run, err = r.Reconcile(ctx, "acme", []string{"a", "b"})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if run.ClosedJobs != 1 {
		t.Errorf("second miss closed %d postings, want 1", run.ClosedJobs)
	}
	if len(fs.closed) != 1 || fs.closed[0] != "c" {
		t.Errorf("closed = %v, want [c]", fs.closed)
	}
}

func TestReconcile_SeenAgainResetsMisses(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore("a", "b")
	r := ingest.NewReconciler(fs, 2)

	// Miss "b" once, then see it again: the counter resets.
	if _, err := r.Reconcile(ctx, "acme", []string{"a"}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if _, err := r.Reconcile(ctx, "acme", []string{"a", "b"}); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	run, err := r.Reconcile(ctx, "acme", []string{"a"})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if run.ClosedJobs != 0 {
		t.Errorf("a single miss after a reset closed %d postings, want 0", run.ClosedJobs)
	}
}

func TestReconcile_RunMetadata(t *testing.T) {
	ctx := context.Background()
	fs := newFakeStore("x")
	r := ingest.NewReconciler(fs, 2)

	run, err := r.Reconcile(ctx, "globex", []string{"x", "y", "z"})
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if run.Company != "globex" {
		t.Errorf("Company = %q, want globex", run.Company)
	}
	if run.JobsSeen != 3 {
		t.Errorf("JobsSeen = %d, want 3", run.JobsSeen)
	}
	if run.NewJobs != 2 {
		t.Errorf("NewJobs = %d, want 2 (y and z)", run.NewJobs)
	}
	if run.RunID == "" {
		t.Error("RunID should be set")
	}
	if run.CompletedAt.IsZero() {
		t.Error("CompletedAt should be set")
	}
}
