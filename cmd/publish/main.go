package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"io"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/project-hirewire/go-aggregator/internal/config"
	"github.com/project-hirewire/go-aggregator/internal/domain"
	"github.com/project-hirewire/go-aggregator/internal/queue"
)

// publish reads normalized jobs as JSON lines from a file (or stdin) and
// pushes them onto the worker queue. ATS adapters run outside this repo;
// this is the hand-off point for their output.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	input := flag.String("input", "-", "JSON-lines file of normalized jobs, - for stdin")
	batchSize := flag.Int("batch", 100, "jobs per pipelined push")
	flag.Parse()

	cfg := config.Load()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}

	var r io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("Open input: %v", err)
		}
		defer f.Close()
		r = f
	}

	publisher := queue.NewPublisher(rdb, cfg.Redis.JobQueue)

	published := 0
	skipped := 0
	batch := make([]*domain.Job, 0, *batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := publisher.PublishBatch(ctx, batch); err != nil {
			log.Fatalf("Publish batch: %v", err)
		}
		published += len(batch)
		batch = batch[:0]
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var job domain.Job
		if err := json.Unmarshal(line, &job); err != nil {
			log.Printf("Skipping malformed line: %v", err)
			skipped++
			continue
		}
		if job.ID == "" || job.Company == "" {
			log.Printf("Skipping job without identity: %q", line)
			skipped++
			continue
		}

		batch = append(batch, &job)
		if len(batch) >= *batchSize {
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("Read input: %v", err)
	}
	flush()

	depth, err := publisher.QueueLength(ctx)
	if err != nil {
		log.Printf("Queue length check failed: %v", err)
	} else {
		log.Printf("Queue depth now %d", depth)
	}

	log.Printf("Published %d jobs (%d skipped)", published, skipped)
}
