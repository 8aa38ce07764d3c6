package worker

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/project-hirewire/go-aggregator/internal/classifier"
	"github.com/project-hirewire/go-aggregator/internal/cleaner"
	"github.com/project-hirewire/go-aggregator/internal/dedup"
	"github.com/project-hirewire/go-aggregator/internal/domain"
	"github.com/project-hirewire/go-aggregator/internal/ingest"
	"github.com/project-hirewire/go-aggregator/internal/queue"
	"github.com/project-hirewire/go-aggregator/internal/store"
)

// Worker consumes normalized jobs from the queue, sanitizes and
// classifies them, and bulk-indexes the result. Classification runs
// exactly once here; downstream consumers treat the job as immutable.
type Worker struct {
	consumer     *queue.Consumer
	cleaner      *cleaner.Cleaner
	deduplicator *dedup.Deduplicator
	tracker      *ingest.Tracker
	indexers     []store.Indexer

	batchSize   int
	concurrency int
}

// Config holds worker configuration
type Config struct {
	Concurrency int
	BatchSize   int
}

// NewWorker creates a new worker
func NewWorker(
	consumer *queue.Consumer,
	clean *cleaner.Cleaner,
	dd *dedup.Deduplicator,
	tracker *ingest.Tracker,
	indexers []store.Indexer,
	cfg Config,
) *Worker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}

	return &Worker{
		consumer:     consumer,
		cleaner:      clean,
		deduplicator: dd,
		tracker:      tracker,
		indexers:     indexers,
		batchSize:    cfg.BatchSize,
		concurrency:  cfg.Concurrency,
	}
}

// Run starts the worker pool
func (w *Worker) Run(ctx context.Context) error {
	log.Printf("Starting worker pool with %d workers", w.concurrency)

	var wg sync.WaitGroup
	errChan := make(chan error, w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			if err := w.runSingle(ctx, workerID); err != nil {
				errChan <- fmt.Errorf("worker %d: %w", workerID, err)
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errChan:
		return err
	case <-done:
		return nil
	}
}

func (w *Worker) runSingle(ctx context.Context, workerID int) error {
	log.Printf("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker %d stopping", workerID)
			return nil
		default:
		}

		// ConsumeBatch blocks on the first item, so no CPU spinning
		jobs, err := w.consumer.ConsumeBatch(ctx, w.batchSize)
		if err != nil {
			log.Printf("Worker %d consume error: %v", workerID, err)
			continue
		}

		if len(jobs) == 0 {
			continue // Timeout from BRPOP, try again
		}

		log.Printf("Worker %d processing %d jobs", workerID, len(jobs))

		processed := w.processJobs(ctx, jobs)
		if len(processed) == 0 {
			continue
		}

		for _, idx := range w.indexers {
			if err := idx.BulkIndex(ctx, processed); err != nil {
				log.Printf("Worker %d index error: %v", workerID, err)
			}
		}
		log.Printf("Worker %d indexed %d jobs", workerID, len(processed))
	}
}

// processJobs sanitizes, deduplicates, and classifies a batch. Unchanged
// postings are still tracked for lifecycle reconciliation but skipped for
// re-indexing.
func (w *Worker) processJobs(ctx context.Context, jobs []*domain.Job) []*domain.Job {
	out := make([]*domain.Job, 0, len(jobs))

	for _, raw := range jobs {
		job := w.cleaner.CleanJob(raw)

		if err := w.tracker.Add(ctx, job.Company, job.ID); err != nil {
			log.Printf("Track %s error: %v", job.Key(), err)
		}

		token := changeToken(job)
		result, err := w.deduplicator.CheckJob(ctx, job, token)
		if err != nil {
			log.Printf("Dedup check %s error: %v", job.Key(), err)
		}
		if result == dedup.ResultUnchanged {
			continue
		}

		classifier.Attach(job)

		if err := w.deduplicator.MarkSeen(ctx, job, token); err != nil {
			log.Printf("Dedup mark %s error: %v", job.Key(), err)
		}

		out = append(out, job)
	}

	return out
}

// changeToken derives the opaque change-detection value for a posting.
// ATS payloads carry no reliable updated-at, so the title plus creation
// instant stands in for one.
func changeToken(job *domain.Job) string {
	return fmt.Sprintf("%s|%d", job.Title, job.CreatedAt.UnixMilli())
}
