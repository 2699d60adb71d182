package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jlanza/canasta/internal/store"
)

// JobRepository tracks pipeline stage runs.
type JobRepository struct {
	db *store.Database
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *store.Database) *JobRepository {
	return &JobRepository{db: db}
}

// Create opens a job record for one stage of a season import.
func (r *JobRepository) Create(ctx context.Context, season int, stage string, total int) (int, error) {
	var id int
	err := r.db.DB().QueryRowContext(ctx, `
		INSERT INTO import_jobs (season, stage, status, games_total)
		VALUES ($1, $2, 'running', $3)
		RETURNING id
	`, season, stage, total).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating import job: %w", err)
	}
	return id, nil
}

// UpdateProgress records how many games the stage has processed.
func (r *JobRepository) UpdateProgress(ctx context.Context, jobID, done int) error {
	_, err := r.db.DB().ExecContext(ctx, `
		UPDATE import_jobs SET games_done = $2 WHERE id = $1
	`, jobID, done)
	if err != nil {
		return fmt.Errorf("updating job %d: %w", jobID, err)
	}
	return nil
}

// Complete closes a job record. A non-nil failure marks it failed with the
// error text; otherwise it is marked completed.
func (r *JobRepository) Complete(ctx context.Context, jobID int, failure error) error {
	status := "completed"
	var lastError sql.NullString
	if failure != nil {
		status = "failed"
		lastError = sql.NullString{String: failure.Error(), Valid: true}
	}

	_, err := r.db.DB().ExecContext(ctx, `
		UPDATE import_jobs
		SET status = $2, last_error = $3, finished_at = NOW()
		WHERE id = $1
	`, jobID, status, lastError)
	if err != nil {
		return fmt.Errorf("closing job %d: %w", jobID, err)
	}
	return nil
}

// ListRecent returns the latest job records, newest first.
func (r *JobRepository) ListRecent(ctx context.Context, limit int) ([]*store.ImportJob, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, season, stage, status, games_total, games_done,
			last_error, started_at, finished_at
		FROM import_jobs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*store.ImportJob
	for rows.Next() {
		job := &store.ImportJob{}
		err := rows.Scan(
			&job.ID, &job.Season, &job.Stage, &job.Status, &job.GamesTotal,
			&job.GamesDone, &job.LastError, &job.StartedAt, &job.FinishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
