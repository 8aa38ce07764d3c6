package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/project-hirewire/go-aggregator/internal/cleaner"
	"github.com/project-hirewire/go-aggregator/internal/config"
	"github.com/project-hirewire/go-aggregator/internal/dedup"
	"github.com/project-hirewire/go-aggregator/internal/ingest"
	"github.com/project-hirewire/go-aggregator/internal/queue"
	"github.com/project-hirewire/go-aggregator/internal/store"
	"github.com/project-hirewire/go-aggregator/internal/worker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Job Aggregation Worker")

	// Load configuration
	cfg := config.Load()

	// Initialize Redis client
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Println("Redis connected")

	// Initialize PostgreSQL store (lifecycle source of truth)
	pgStore, err := store.NewPostgresStore(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
	if err != nil {
		log.Fatalf("PostgreSQL connection failed: %v", err)
	}
	defer pgStore.Close()
	log.Println("PostgreSQL connected")

	// Initialize Elasticsearch indexer (search replica)
	esIndexer, err := store.NewElasticsearchIndexer(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
	if err != nil {
		log.Fatalf("Elasticsearch connection failed: %v", err)
	}
	log.Printf("Elasticsearch connected, index: %s", cfg.Elasticsearch.Index)

	if err := esIndexer.EnsureIndex(ctx); err != nil {
		log.Printf("Warning: Failed to ensure index: %v", err)
	}

	// Initialize components
	htmlCleaner := cleaner.NewCleaner()
	deduplicator := dedup.NewDeduplicator(rdb, cfg.Redis.DedupPrefix, cfg.Ingest.DedupTTL)
	tracker := ingest.NewTracker(rdb, "")
	consumer := queue.NewConsumer(rdb, cfg.Redis.JobQueue, 5*time.Second)

	// Reconciliation sweep on a cron schedule
	reconciler := ingest.NewReconciler(pgStore, cfg.Ingest.MissThreshold)
	scheduler := ingest.NewScheduler(tracker, reconciler, cfg.Ingest.ReconcileSpec)
	if err := scheduler.Start(ctx); err != nil {
		log.Fatalf("Scheduler start failed: %v", err)
	}
	defer scheduler.Stop()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start worker pool (queue -> sanitize -> classify -> index)
	wg.Add(1)
	go func() {
		defer wg.Done()
		w := worker.NewWorker(consumer, htmlCleaner, deduplicator, tracker,
			[]store.Indexer{pgStore, esIndexer}, worker.Config{
				Concurrency: cfg.Worker.Concurrency,
				BatchSize:   cfg.Worker.BatchSize,
			})
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			log.Printf("Worker error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutdown signal received")
	cancel()
	wg.Wait()
	log.Println("Worker stopped")
}
