package tasks

// Defines constants and payloads for task types used in Asynq.

const (
	// TypeAutoTagBatch reconciles stored tags of every wine with the
	// engine's suggestions.
	TypeAutoTagBatch = "autotag:batch"

	// QueueAutoTag is the queue reconciliation tasks are sent to.
	QueueAutoTag = "autotag"
)

// AutoTagBatchPayload is the JSON payload of a TypeAutoTagBatch task.
type AutoTagBatchPayload struct {
	JobID       string `json:"job_id,omitempty"`
	RequestedBy string `json:"requested_by,omitempty"`
}
