package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"corkcount/internal/models"
	"corkcount/internal/store"

	"github.com/google/uuid"
)

func (s *Store) RecordJobEnqueue(ctx context.Context, params store.JobRecordParams) error {
	payload := "{}"
	if params.Payload != nil {
		payload = string(params.Payload)
	}
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO background_jobs (job_id, task_type, payload, queue, status, requested_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (job_id) DO NOTHING`,
		params.JobID.String(), params.TaskType, payload, params.Queue, params.Status, params.RequestedBy, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to record job enqueue event for JobID %s: %w", params.JobID, err)
	}
	return nil
}

func (s *Store) UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE background_jobs SET status = ?, updated_at = ? WHERE job_id = ?`,
		status, time.Now().UTC(), jobID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update job status for job %s: %w", jobID, err)
	}
	return requireRow(res, jobID)
}

func (s *Store) UpdateJobResult(ctx context.Context, jobID uuid.UUID, status string, result json.RawMessage) error {
	var encoded sql.NullString
	if result != nil {
		encoded = sql.NullString{String: string(result), Valid: true}
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE background_jobs SET status = ?, result = ?, updated_at = ? WHERE job_id = ?`,
		status, encoded, time.Now().UTC(), jobID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update job result for job %s: %w", jobID, err)
	}
	return requireRow(res, jobID)
}

func requireRow(res sql.Result, jobID uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for job %s: %w", jobID, err)
	}
	if n == 0 {
		return fmt.Errorf("job %s not found: %w", jobID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, job_id, task_type, payload, queue, status, requested_by, result, created_at, updated_at
		FROM background_jobs
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*models.BackgroundJob{}
	for rows.Next() {
		var (
			job     models.BackgroundJob
			jobID   string
			payload string
			result  sql.NullString
		)
		err := rows.Scan(&job.ID, &jobID, &job.TaskType, &payload, &job.Queue,
			&job.Status, &job.RequestedBy, &result, &job.CreatedAt, &job.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		if job.JobID, err = uuid.Parse(jobID); err != nil {
			return nil, fmt.Errorf("invalid job id %q: %w", jobID, err)
		}
		job.Payload = json.RawMessage(payload)
		if result.Valid {
			job.Result = json.RawMessage(result.String)
		}
		jobs = append(jobs, &job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}
	return jobs, nil
}
