// Package timeline partitions jobs into fixed-width, clock-aligned time
// buckets for charting, and derives cumulative and summary statistics.
package timeline

import (
	"time"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// Bucket is one fixed-width interval [Start, End) with the jobs that were
// posted inside it.
type Bucket struct {
	Start  time.Time `json:"bucket_start"`
	End    time.Time `json:"bucket_end"`
	Count  int       `json:"count"`
	JobIDs []string  `json:"job_ids,omitempty"`
}

// Stats summarizes a bucket sequence.
type Stats struct {
	TotalJobs       int     `json:"total_jobs"`
	MaxBucketCount  int     `json:"max_bucket_count"`
	AvgBucketCount  float64 `json:"avg_bucket_count"`
	BucketsWithJobs int     `json:"buckets_with_jobs"`
}

// Buckets partitions jobs into the window's bucket sequence. Bucket edges
// are aligned to absolute clock boundaries (floor of epoch time by bucket
// width), not to the query moment. Every bucket from the floored window
// start up to now is emitted, empty ones included, so chart axes get a
// gap-free sequence. The final bucket containing now is emitted too; it
// is simply shorter in elapsed real time than its configured width.
//
// Jobs older than the window start, newer than now, or carrying a
// zero-value CreatedAt cannot be placed and are left out of every bucket.
func Buckets(jobs []*domain.Job, window domain.TimeWindow, now time.Time) []Bucket {
	if !window.Valid() {
		return nil
	}

	size := window.BucketSize()
	windowStart := now.Add(-window.Duration())
	firstStart := alignDown(windowStart, size)

	var buckets []Bucket
	for t := firstStart; t.Before(now); t = t.Add(size) {
		buckets = append(buckets, Bucket{Start: t, End: t.Add(size)})
	}
	if len(buckets) == 0 {
		return buckets
	}

	sizeMs := size.Milliseconds()
	firstMs := firstStart.UnixMilli()
	for _, j := range jobs {
		if j.CreatedAt.IsZero() || j.CreatedAt.Before(windowStart) {
			continue
		}
		idx := (j.CreatedAt.UnixMilli() - firstMs) / sizeMs
		if idx < 0 || idx >= int64(len(buckets)) {
			continue
		}
		buckets[idx].Count++
		buckets[idx].JobIDs = append(buckets[idx].JobIDs, j.ID)
	}

	return buckets
}

// Cumulative returns the running prefix sum of bucket counts.
func Cumulative(buckets []Bucket) []int {
	out := make([]int, len(buckets))
	sum := 0
	for i, b := range buckets {
		sum += b.Count
		out[i] = sum
	}
	return out
}

// Summarize computes totals over the bucket sequence. The average is
// taken over non-empty buckets only; with no non-empty buckets it is 0.
func Summarize(buckets []Bucket) Stats {
	var s Stats
	for _, b := range buckets {
		s.TotalJobs += b.Count
		if b.Count > s.MaxBucketCount {
			s.MaxBucketCount = b.Count
		}
		if b.Count > 0 {
			s.BucketsWithJobs++
		}
	}
	if s.BucketsWithJobs > 0 {
		s.AvgBucketCount = float64(s.TotalJobs) / float64(s.BucketsWithJobs)
	}
	return s
}

// alignDown floors t to the previous multiple of size on the epoch
// timeline, so bucket edges land on clean clock boundaries.
func alignDown(t time.Time, size time.Duration) time.Time {
	sizeMs := size.Milliseconds()
	floored := t.UnixMilli() / sizeMs * sizeMs
	return time.UnixMilli(floored).In(t.Location())
}
