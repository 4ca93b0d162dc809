package store

import (
	"context"
	"encoding/json"
	"fmt"

	"corkcount/internal/models"
	"corkcount/internal/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// AsynqJobClient enqueues reconciliation tasks and records them to the JobStore.
type AsynqJobClient struct {
	client   *asynq.Client
	jobStore JobStore
}

func NewAsynqJobClient(redisOpt asynq.RedisClientOpt, js JobStore) (*AsynqJobClient, error) {
	if js == nil {
		return nil, fmt.Errorf("JobStore cannot be nil for AsynqJobClient")
	}
	if redisOpt.Addr == "" {
		return nil, fmt.Errorf("redis address is required for AsynqJobClient")
	}
	return &AsynqJobClient{client: asynq.NewClient(redisOpt), jobStore: js}, nil
}

func (jc *AsynqJobClient) Close() error {
	return jc.client.Close()
}

// Enqueue enqueues a task and records the event to the JobStore. A failure to
// record is logged but not returned since the task is already queued.
func (jc *AsynqJobClient) Enqueue(ctx context.Context, task *asynq.Task, requestedBy string, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if jc.client == nil {
		return nil, fmt.Errorf("AsynqJobClient internal client is not initialized")
	}
	info, err := jc.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return nil, fmt.Errorf("enqueue task %s: %w", task.Type(), err)
	}
	log.WithFields(log.Fields{"task_type": task.Type(), "task_id": info.ID, "queue": info.Queue}).Debug("Enqueued task")

	jobUUID, err := uuid.Parse(info.ID)
	if err != nil {
		log.Errorf("Failed to parse Asynq Task ID '%s' to UUID: %v. Job record skipped.", info.ID, err)
		return info, nil
	}

	recordParams := JobRecordParams{
		JobID:       jobUUID,
		TaskType:    task.Type(),
		Payload:     task.Payload(),
		Queue:       info.Queue,
		Status:      models.JobStatusEnqueued,
		RequestedBy: requestedBy,
	}
	if err := jc.jobStore.RecordJobEnqueue(ctx, recordParams); err != nil {
		log.Errorf("Failed to record job enqueue event to DB for Task ID %s: %v", info.ID, err)
	}
	return info, nil
}

// EnqueueAutoTagJob queues a full inventory reconciliation and returns its job id.
func (jc *AsynqJobClient) EnqueueAutoTagJob(ctx context.Context, requestedBy string) (uuid.UUID, error) {
	jobID := uuid.New()
	payload, err := json.Marshal(tasks.AutoTagBatchPayload{JobID: jobID.String(), RequestedBy: requestedBy})
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode autotag payload: %w", err)
	}
	task := asynq.NewTask(tasks.TypeAutoTagBatch, payload)
	_, err = jc.Enqueue(ctx, task, requestedBy,
		asynq.Queue(tasks.QueueAutoTag),
		asynq.TaskID(jobID.String()),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("enqueue autotag job: %w", err)
	}
	return jobID, nil
}

var _ JobClient = (*AsynqJobClient)(nil)
