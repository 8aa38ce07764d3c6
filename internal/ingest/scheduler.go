package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Scheduler wraps robfig/cron and runs the periodic reconciliation sweep:
// for every company with tracked IDs, drain the tracker, reconcile against
// the store, and persist run metadata.
type Scheduler struct {
	cron       *cron.Cron
	tracker    *Tracker
	reconciler *Reconciler
	spec       string // cron spec, e.g. "@every 6h"
}

// NewScheduler creates a Scheduler firing on the given cron spec.
func NewScheduler(tracker *Tracker, reconciler *Reconciler, spec string) *Scheduler {
	if spec == "" {
		spec = "@every 6h"
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLogger(cron.DefaultLogger)),
		tracker:    tracker,
		reconciler: reconciler,
		spec:       spec,
	}
}

// Start registers the sweep and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("Reconciliation scheduler started - spec: %s", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("Reconciliation scheduler stopped")
}

// runSweep reconciles every company with tracked IDs.
func (s *Scheduler) runSweep(ctx context.Context) {
	companies, err := s.tracker.Companies(ctx)
	if err != nil {
		log.Printf("Sweep: list companies error: %v", err)
		return
	}
	if len(companies) == 0 {
		log.Println("Sweep: no tracked companies, nothing to reconcile")
		return
	}

	log.Printf("Sweep: reconciling %d company(ies)", len(companies))
	for _, company := range companies {
		ids, err := s.tracker.Drain(ctx, company)
		if err != nil {
			log.Printf("Sweep: drain %s error: %v", company, err)
			continue
		}

		run, err := s.reconciler.Reconcile(ctx, company, ids)
		if err != nil {
			log.Printf("Sweep: reconcile %s error: %v", company, err)
			continue
		}

		if err := s.reconciler.RecordRun(ctx, run); err != nil {
			log.Printf("Sweep: record run for %s error: %v", company, err)
		}
	}

	log.Println("Sweep complete")
}
