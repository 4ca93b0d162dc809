package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Wine is a single inventory record.
type Wine struct {
	ID          string    `db:"id" json:"id" yaml:"id"`
	Name        string    `db:"name" json:"name" yaml:"name"`
	Winery      string    `db:"winery" json:"winery,omitempty" yaml:"winery"`
	Vintage     *int      `db:"vintage" json:"vintage,omitempty" yaml:"vintage"`
	Type        string    `db:"type" json:"type" yaml:"type"`
	Varietal    string    `db:"varietal" json:"varietal,omitempty" yaml:"varietal"`
	FlavorNotes string    `db:"flavor_notes" json:"flavor_notes,omitempty" yaml:"flavor_notes"`
	Description string    `db:"description" json:"description,omitempty" yaml:"description"`
	Price       float64   `db:"price" json:"price" yaml:"price"`
	Quantity    int       `db:"quantity" json:"quantity" yaml:"quantity"`
	Tags        []string  `db:"tags" json:"tags" yaml:"tags"` // nil when never tagged
	CreatedAt   time.Time `db:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at" yaml:"-"`
}

// DisplayName returns the wine name, falling back to its id.
func (w *Wine) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.ID
}

// Job statuses recorded for background reconciliation runs.
const (
	JobStatusEnqueued            = "enqueued"
	JobStatusRunning             = "running"
	JobStatusCompleted           = "completed"
	JobStatusCompletedWithErrors = "completed_with_errors"
	JobStatusFailed              = "failed"
)

// BackgroundJob mirrors the background_jobs table schema.
type BackgroundJob struct {
	ID          int64           `db:"id" json:"id"`
	JobID       uuid.UUID       `db:"job_id" json:"job_id"` // Asynq Task ID
	TaskType    string          `db:"task_type" json:"task_type"`
	Payload     json.RawMessage `db:"payload" json:"payload"`
	Queue       string          `db:"queue" json:"queue"`
	Status      string          `db:"status" json:"status"`
	RequestedBy string          `db:"requested_by" json:"requested_by,omitempty"`
	Result      json.RawMessage `db:"result" json:"result,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// TagCount is the number of wines carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
