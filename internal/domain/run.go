package domain

import "time"

// JobStatus is the lifecycle state of a stored posting.
type JobStatus string

const (
	StatusOpen   JobStatus = "OPEN"
	StatusClosed JobStatus = "CLOSED"
)

// IngestRun records metadata about one ingest/reconciliation run for a
// company, used for tracking history and performance.
type IngestRun struct {
	RunID       string    `json:"run_id"`
	Company     string    `json:"company"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	JobsSeen    int       `json:"jobs_seen"`
	NewJobs     int       `json:"new_jobs"`
	ClosedJobs  int       `json:"closed_jobs"`
	ErrorCount  int       `json:"error_count"`
}
