package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// PostgresStore persists jobs and ingest runs to PostgreSQL
type PostgresStore struct {
	db        *sql.DB
	tableName string
}

// NewPostgresStore opens a connection and ensures the schema exists
func NewPostgresStore(connStr string, tableName string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.ensureTables(); err != nil {
		return nil, fmt.Errorf("ensure tables: %w", err)
	}

	return s, nil
}

// ensureTables creates the jobs and ingest_runs tables if they don't exist
func (s *PostgresStore) ensureTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT NOT NULL,
			source TEXT NOT NULL,
			company TEXT NOT NULL,
			title TEXT NOT NULL,
			department TEXT,
			team TEXT,
			location TEXT,
			employment_type TEXT,
			is_remote BOOLEAN DEFAULT FALSE,
			tags TEXT[],
			created_at TIMESTAMP WITH TIME ZONE,
			url TEXT,
			raw JSONB,
			-- classification, attached once at normalization time
			is_software_adjacent BOOLEAN,
			role_category TEXT,
			confidence FLOAT,
			matched_keywords TEXT[],
			-- lifecycle tracking
			status TEXT NOT NULL DEFAULT 'OPEN',
			first_seen_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			last_seen_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			consecutive_misses INTEGER NOT NULL DEFAULT 0,
			closed_on TIMESTAMP WITH TIME ZONE,
			PRIMARY KEY (source, company, id)
		)
	`, s.tableName)

	if _, err := s.db.Exec(query); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS ingest_runs (
			run_id TEXT PRIMARY KEY,
			company TEXT NOT NULL,
			started_at TIMESTAMP WITH TIME ZONE NOT NULL,
			completed_at TIMESTAMP WITH TIME ZONE,
			jobs_seen INTEGER DEFAULT 0,
			new_jobs INTEGER DEFAULT 0,
			closed_jobs INTEGER DEFAULT 0,
			error_count INTEGER DEFAULT 0
		)
	`)
	return err
}

// BulkIndex upserts multiple jobs in one transaction. A re-seen posting
// reopens, refreshes its fields, and resets its miss counter.
func (s *PostgresStore) BulkIndex(ctx context.Context, jobs []*domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, source, company, title, department, team, location,
			employment_type, is_remote, tags, created_at, url, raw,
			is_software_adjacent, role_category, confidence, matched_keywords,
			status, last_seen_at, consecutive_misses
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, 'OPEN', NOW(), 0
		)
		ON CONFLICT (source, company, id) DO UPDATE SET
			title = EXCLUDED.title,
			department = EXCLUDED.department,
			team = EXCLUDED.team,
			location = EXCLUDED.location,
			employment_type = EXCLUDED.employment_type,
			is_remote = EXCLUDED.is_remote,
			tags = EXCLUDED.tags,
			url = EXCLUDED.url,
			raw = EXCLUDED.raw,
			is_software_adjacent = EXCLUDED.is_software_adjacent,
			role_category = EXCLUDED.role_category,
			confidence = EXCLUDED.confidence,
			matched_keywords = EXCLUDED.matched_keywords,
			status = 'OPEN',
			last_seen_at = NOW(),
			consecutive_misses = 0,
			closed_on = NULL
	`, s.tableName)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, job := range jobs {
		rawJSON, err := json.Marshal(job.Raw)
		if err != nil {
			return fmt.Errorf("marshal raw payload for %s: %w", job.ID, err)
		}

		var adjacent sql.NullBool
		var category sql.NullString
		var confidence sql.NullFloat64
		var keywords []string
		if c := job.Classification; c != nil {
			adjacent = sql.NullBool{Bool: c.IsSoftwareAdjacent, Valid: true}
			category = sql.NullString{String: string(c.Category), Valid: true}
			confidence = sql.NullFloat64{Float64: c.Confidence, Valid: true}
			keywords = c.MatchedKeywords
		}

		_, err = stmt.ExecContext(ctx,
			job.ID, string(job.Source), job.Company, job.Title,
			job.Department, job.Team, job.Location,
			job.EmploymentType, job.IsRemote, pq.Array(job.Tags),
			job.CreatedAt, job.URL, rawJSON,
			adjacent, category, confidence, pq.Array(keywords),
		)
		if err != nil {
			return fmt.Errorf("upsert job %s: %w", job.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ActiveJobIDs returns the IDs of all OPEN postings for a company
func (s *PostgresStore) ActiveJobIDs(ctx context.Context, company string) (map[string]bool, error) {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE company = $1 AND status = 'OPEN'`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, company)
	if err != nil {
		return nil, fmt.Errorf("query active ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// TouchSeen resets consecutive misses and bumps last_seen for the given postings
func (s *PostgresStore) TouchSeen(ctx context.Context, company string, ids []string, seenAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET last_seen_at = $1, consecutive_misses = 0
		WHERE company = $2 AND id = ANY($3)
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query, seenAt, company, pq.Array(ids)); err != nil {
		return fmt.Errorf("touch seen: %w", err)
	}
	return nil
}

// MarkMissed increments consecutive misses and closes postings that reach
// the threshold, returning the IDs closed
func (s *PostgresStore) MarkMissed(ctx context.Context, company string, ids []string, threshold int, closedAt time.Time) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	bump := fmt.Sprintf(`
		UPDATE %s
		SET consecutive_misses = consecutive_misses + 1
		WHERE company = $1 AND id = ANY($2) AND status = 'OPEN'
	`, s.tableName)
	if _, err := tx.ExecContext(ctx, bump, company, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("bump misses: %w", err)
	}

	closeQuery := fmt.Sprintf(`
		UPDATE %s
		SET status = 'CLOSED', closed_on = $1
		WHERE company = $2 AND id = ANY($3)
		  AND status = 'OPEN' AND consecutive_misses >= $4
		RETURNING id
	`, s.tableName)

	rows, err := tx.QueryContext(ctx, closeQuery, closedAt, company, pq.Array(ids), threshold)
	if err != nil {
		return nil, fmt.Errorf("close jobs: %w", err)
	}

	var closed []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan closed id: %w", err)
		}
		closed = append(closed, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return closed, nil
}

// RecordRun persists ingest-run metadata
func (s *PostgresStore) RecordRun(ctx context.Context, run *domain.IngestRun) error {
	var completed sql.NullTime
	if !run.CompletedAt.IsZero() {
		completed = sql.NullTime{Time: run.CompletedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (
			run_id, company, started_at, completed_at,
			jobs_seen, new_jobs, closed_jobs, error_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (run_id) DO UPDATE SET
			completed_at = EXCLUDED.completed_at,
			jobs_seen = EXCLUDED.jobs_seen,
			new_jobs = EXCLUDED.new_jobs,
			closed_jobs = EXCLUDED.closed_jobs,
			error_count = EXCLUDED.error_count
	`, run.RunID, run.Company, run.StartedAt, completed,
		run.JobsSeen, run.NewJobs, run.ClosedJobs, run.ErrorCount)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// OpenJobs loads every OPEN posting, most recent first
func (s *PostgresStore) OpenJobs(ctx context.Context) ([]*domain.Job, error) {
	query := fmt.Sprintf(`
		SELECT id, source, company, title, department, team, location,
		       employment_type, is_remote, tags, created_at, url, raw,
		       is_software_adjacent, role_category, confidence, matched_keywords
		FROM %s
		WHERE status = 'OPEN'
		ORDER BY created_at DESC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query open jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func scanJob(rows *sql.Rows) (*domain.Job, error) {
	var (
		job        domain.Job
		source     string
		department sql.NullString
		team       sql.NullString
		location   sql.NullString
		employment sql.NullString
		createdAt  sql.NullTime
		url        sql.NullString
		rawJSON    []byte
		adjacent   sql.NullBool
		category   sql.NullString
		confidence sql.NullFloat64
		tags       pq.StringArray
		keywords   pq.StringArray
	)

	err := rows.Scan(
		&job.ID, &source, &job.Company, &job.Title, &department, &team,
		&location, &employment, &job.IsRemote, &tags, &createdAt, &url,
		&rawJSON, &adjacent, &category, &confidence, &keywords,
	)
	if err != nil {
		return nil, fmt.Errorf("scan job: %w", err)
	}

	job.Source = domain.JobSource(source)
	job.Department = department.String
	job.Team = team.String
	job.Location = location.String
	job.EmploymentType = employment.String
	job.URL = url.String
	job.Tags = []string(tags)
	if createdAt.Valid {
		job.CreatedAt = createdAt.Time
	}
	if len(rawJSON) > 0 {
		if err := json.Unmarshal(rawJSON, &job.Raw); err != nil {
			return nil, fmt.Errorf("unmarshal raw payload for %s: %w", job.ID, err)
		}
	}
	if category.Valid {
		job.Classification = &domain.RoleClassification{
			IsSoftwareAdjacent: adjacent.Bool,
			Category:           domain.SoftwareRoleCategory(category.String),
			Confidence:         confidence.Float64,
			MatchedKeywords:    []string(keywords),
		}
	}

	return &job, nil
}

// Close releases the underlying connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
