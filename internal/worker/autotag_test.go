package worker

import (
	"context"
	"encoding/json"
	"testing"

	"corkcount/internal/models"
	"corkcount/internal/services"
	"corkcount/internal/store"
	"corkcount/internal/store/sqlite"
	"corkcount/internal/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(s.Close)
	return s
}

func newTask(t *testing.T, jobID uuid.UUID) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(tasks.AutoTagBatchPayload{JobID: jobID.String(), RequestedBy: "test"})
	require.NoError(t, err)
	return asynq.NewTask(tasks.TypeAutoTagBatch, payload)
}

func recordJob(t *testing.T, s *sqlite.Store, jobID uuid.UUID) {
	t.Helper()
	require.NoError(t, s.RecordJobEnqueue(context.Background(), store.JobRecordParams{
		JobID:    jobID,
		TaskType: tasks.TypeAutoTagBatch,
		Queue:    tasks.QueueAutoTag,
		Status:   models.JobStatusEnqueued,
	}))
}

func TestRegisterHandlers(t *testing.T) {
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, AutoTagDeps{})

	_, pattern := mux.Handler(asynq.NewTask(tasks.TypeAutoTagBatch, nil))
	assert.Equal(t, tasks.TypeAutoTagBatch, pattern)
}

func TestHandleAutoTagJob_ReconcilesAndRecords(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	cab := &models.Wine{Name: "Estate Cabernet", Type: "Red Wine", FlavorNotes: "blackberry and cedar"}
	brut := &models.Wine{Name: "Brut Reserve", Type: "Sparkling", Tags: []string{"citrus", "dry", "light"}}
	require.NoError(t, s.CreateWine(ctx, cab))
	require.NoError(t, s.CreateWine(ctx, brut))

	jobID := uuid.New()
	recordJob(t, s, jobID)

	deps := AutoTagDeps{Service: services.NewAutoTagService(s, services.AutoTagOptions{}), JobStore: s}
	require.NoError(t, HandleAutoTagJob(deps)(ctx, newTask(t, jobID)))

	got, err := s.GetWine(ctx, cab.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"berry", "earthy", "oak"}, got.Tags)

	jobs, err := s.ListJobs(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusCompleted, jobs[0].Status)

	var res services.BatchAutoTagResult
	require.NoError(t, json.Unmarshal(jobs[0].Result, &res))
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 0, res.Failed)
}

func TestHandleAutoTagJob_EmptyInventoryCompletes(t *testing.T) {
	s := newStore(t)
	jobID := uuid.New()
	recordJob(t, s, jobID)

	deps := AutoTagDeps{Service: services.NewAutoTagService(s, services.AutoTagOptions{}), JobStore: s}
	require.NoError(t, HandleAutoTagJob(deps)(context.Background(), newTask(t, jobID)))

	jobs, err := s.ListJobs(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.JobStatusCompleted, jobs[0].Status)
	assert.Contains(t, string(jobs[0].Result), services.NoWinesMessage)
}

func TestHandleAutoTagJob_FetchFailureRetries(t *testing.T) {
	s, err := sqlite.NewStore(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	s.Close()

	deps := AutoTagDeps{Service: services.NewAutoTagService(s, services.AutoTagOptions{})}
	err = HandleAutoTagJob(deps)(context.Background(), newTask(t, uuid.New()))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleAutoTagJob_BadPayloadSkipsRetry(t *testing.T) {
	deps := AutoTagDeps{Service: services.NewAutoTagService(newStore(t), services.AutoTagOptions{})}
	err := HandleAutoTagJob(deps)(context.Background(), asynq.NewTask(tasks.TypeAutoTagBatch, []byte("{not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
