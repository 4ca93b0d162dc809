package services

import (
	"context"
	"errors"
	"fmt"

	"corkcount/internal/models"
	"corkcount/internal/store"

	"github.com/google/uuid"
)

// ErrQueueUnavailable is returned when no job queue is configured.
var ErrQueueUnavailable = errors.New("job queue is not configured")

// JobService handles background reconciliation jobs.
type JobService struct {
	jobStore  store.JobStore
	jobClient store.JobClient
}

// NewJobService creates a new JobService. jc may be nil when redis is not
// configured; enqueueing then fails with ErrQueueUnavailable.
func NewJobService(js store.JobStore, jc store.JobClient) *JobService {
	return &JobService{jobStore: js, jobClient: jc}
}

// EnqueueAutoTag queues a full reconciliation for the worker.
func (s *JobService) EnqueueAutoTag(ctx context.Context, requestedBy string) (uuid.UUID, error) {
	if s.jobClient == nil {
		return uuid.Nil, ErrQueueUnavailable
	}
	id, err := s.jobClient.EnqueueAutoTagJob(ctx, requestedBy)
	if err != nil {
		return uuid.Nil, fmt.Errorf("enqueue autotag job: %w", err)
	}
	return id, nil
}

// ListJobs retrieves recorded background jobs, newest first.
func (s *JobService) ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	jobs, err := s.jobStore.ListJobs(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs from store: %w", err)
	}
	return jobs, nil
}
