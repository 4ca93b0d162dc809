package primary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"corkcount/internal/models"
	"corkcount/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// --- Job Store Implementation ---

// RecordJobEnqueue inserts a record into the background_jobs table.
func (s *StoreImpl) RecordJobEnqueue(ctx context.Context, params store.JobRecordParams) error {
	query := `
		INSERT INTO background_jobs (job_id, task_type, payload, queue, status, requested_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (job_id) DO NOTHING
		RETURNING id`

	payloadJSON := json.RawMessage("{}")
	if params.Payload != nil {
		payloadJSON = json.RawMessage(params.Payload)
	}

	now := time.Now()
	var insertedID int64
	err := s.db.QueryRow(ctx, query,
		params.JobID,
		params.TaskType,
		payloadJSON,
		params.Queue,
		params.Status,
		params.RequestedBy,
		now,
		now,
	).Scan(&insertedID)
	if err != nil {
		// ON CONFLICT DO NOTHING returns no row when the job is already recorded.
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debugf("Job %s already recorded, skipping insertion.", params.JobID)
			return nil
		}
		return fmt.Errorf("failed to record job enqueue event for JobID %s: %w", params.JobID, err)
	}

	log.Debugf("Recorded job enqueue event for JobID %s with DB ID %d", params.JobID, insertedID)
	return nil
}

// UpdateJobStatus updates the status of a job given its Asynq Task UUID.
func (s *StoreImpl) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error {
	query := `UPDATE background_jobs SET status = $1, updated_at = $2 WHERE job_id = $3`
	cmdTag, err := s.db.Exec(ctx, query, status, time.Now(), jobID)
	if err != nil {
		return fmt.Errorf("failed to update job status for job %s: %w", jobID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job %s not found to update status: %w", jobID, store.ErrNotFound)
	}
	return nil
}

// UpdateJobResult stores the final status and JSON result of a job.
func (s *StoreImpl) UpdateJobResult(ctx context.Context, jobID uuid.UUID, status string, result json.RawMessage) error {
	query := `UPDATE background_jobs SET status = $1, result = $2, updated_at = $3 WHERE job_id = $4`
	cmdTag, err := s.db.Exec(ctx, query, status, result, time.Now(), jobID)
	if err != nil {
		return fmt.Errorf("failed to update job result for job %s: %w", jobID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("job %s not found to update result: %w", jobID, store.ErrNotFound)
	}
	return nil
}

// ListJobs returns recorded jobs, newest first.
func (s *StoreImpl) ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error) {
	query := `
		SELECT id, job_id, task_type, payload, queue, status, requested_by, result, created_at, updated_at
		FROM background_jobs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.BackgroundJob{}
	for rows.Next() {
		job := &models.BackgroundJob{}
		err := rows.Scan(
			&job.ID, &job.JobID, &job.TaskType, &job.Payload, &job.Queue,
			&job.Status, &job.RequestedBy, &job.Result, &job.CreatedAt, &job.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}

var _ store.JobStore = (*StoreImpl)(nil)
