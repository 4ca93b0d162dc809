package store

import (
	"context"
	"encoding/json"

	"corkcount/internal/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// --- Job Client ---

type JobClient interface {
	// Enqueue records the task in the JobStore after asynq accepts it.
	Enqueue(ctx context.Context, task *asynq.Task, requestedBy string, opts ...asynq.Option) (*asynq.TaskInfo, error)
	EnqueueAutoTagJob(ctx context.Context, requestedBy string) (uuid.UUID, error)
	Close() error
}

// --- Inventory Store ---

// WineFilter narrows ListWines. The zero value selects every wine.
type WineFilter struct {
	Type   string   // case-insensitive exact match
	Tags   []string // every tag must be present
	Limit  int      // 0 means no limit
	Offset int
}

type InventoryStore interface {
	ListWines(ctx context.Context, filter WineFilter) ([]*models.Wine, error)
	GetWine(ctx context.Context, id string) (*models.Wine, error)
	CreateWine(ctx context.Context, wine *models.Wine) error
	// UpdateWineTags replaces only the tags of a wine.
	UpdateWineTags(ctx context.Context, id string, tags []string) error
	// TagCounts reports how many wines carry each tag.
	TagCounts(ctx context.Context) ([]models.TagCount, error)

	Ping(ctx context.Context) error
}

// --- Job Store ---

// JobRecordParams holds parameters for recording a job event.
type JobRecordParams struct {
	JobID       uuid.UUID
	TaskType    string
	Payload     []byte
	Queue       string
	Status      string
	RequestedBy string
}

type JobStore interface {
	RecordJobEnqueue(ctx context.Context, params JobRecordParams) error
	UpdateJobStatus(ctx context.Context, jobID uuid.UUID, status string) error
	UpdateJobResult(ctx context.Context, jobID uuid.UUID, status string, result json.RawMessage) error
	ListJobs(ctx context.Context, limit, offset int) ([]*models.BackgroundJob, error)
}

// Migrator creates the schema a store needs. It must be safe to run twice.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// PrimaryStore is everything a backing database provides.
type PrimaryStore interface {
	InventoryStore
	JobStore
	Migrator
	Close()
}
