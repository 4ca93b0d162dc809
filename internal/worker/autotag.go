// Package worker holds the asynq handlers run by `corkcount worker`.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"corkcount/internal/models"
	"corkcount/internal/services"
	"corkcount/internal/store"
	"corkcount/internal/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// AutoTagDeps holds the dependencies of the reconciliation handler.
type AutoTagDeps struct {
	Service  *services.AutoTagService
	JobStore store.JobStore // optional
}

// RegisterHandlers registers all task handlers on mux.
func RegisterHandlers(mux *asynq.ServeMux, deps AutoTagDeps) {
	mux.HandleFunc(tasks.TypeAutoTagBatch, HandleAutoTagJob(deps))
	log.Infof("Registered handler for %s", tasks.TypeAutoTagBatch)
}

// HandleAutoTagJob runs a full reconciliation. The JSON report is written to
// the task result and to the job record. Only a failure to fetch the
// inventory fails the task, so asynq retries it; per-wine failures are part
// of a completed run.
func HandleAutoTagJob(deps AutoTagDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p tasks.AutoTagBatchPayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &p); err != nil {
				return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
			}
		}
		jobID := resolveJobID(t, p)
		logger := log.WithFields(log.Fields{"task_type": t.Type(), "job_id": jobID, "requested_by": p.RequestedBy})

		if deps.Service == nil {
			return fmt.Errorf("autotag service is not configured: %w", asynq.SkipRetry)
		}

		updateStatus(ctx, deps.JobStore, jobID, models.JobStatusRunning)
		logger.Info("Starting auto-tag reconciliation")

		res := deps.Service.BatchAutoTagInventory(ctx)
		body, err := json.Marshal(res)
		if err != nil {
			return fmt.Errorf("encode autotag result: %w", err)
		}
		if rw := t.ResultWriter(); rw != nil {
			if _, err := rw.Write(body); err != nil {
				logger.WithError(err).Warn("Failed to write task result")
			}
		}

		status := models.JobStatusCompleted
		switch {
		case res.FetchFailed():
			status = models.JobStatusFailed
		case res.Failed > 0:
			status = models.JobStatusCompletedWithErrors
		}
		if deps.JobStore != nil && jobID != uuid.Nil {
			if err := deps.JobStore.UpdateJobResult(ctx, jobID, status, body); err != nil {
				logger.WithError(err).Warn("Failed to record job result")
			}
		}

		if res.FetchFailed() {
			return fmt.Errorf("autotag batch: %s", strings.Join(res.Errors, "; "))
		}
		logger.WithFields(log.Fields{"processed": res.Processed, "failed": res.Failed, "status": status}).
			Info("Auto-tag reconciliation job done")
		return nil
	}
}

// resolveJobID prefers the id carried in the payload and falls back to the
// asynq task id.
func resolveJobID(t *asynq.Task, p tasks.AutoTagBatchPayload) uuid.UUID {
	if id, err := uuid.Parse(p.JobID); err == nil {
		return id
	}
	if rw := t.ResultWriter(); rw != nil {
		if id, err := uuid.Parse(rw.TaskID()); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func updateStatus(ctx context.Context, js store.JobStore, jobID uuid.UUID, status string) {
	if js == nil || jobID == uuid.Nil {
		return
	}
	if err := js.UpdateJobStatus(ctx, jobID, status); err != nil {
		log.WithError(err).WithField("job_id", jobID).Warn("Failed to update job status")
	}
}
