package primary

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS wines (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	winery       TEXT NOT NULL DEFAULT '',
	vintage      INTEGER,
	type         TEXT NOT NULL DEFAULT '',
	varietal     TEXT NOT NULL DEFAULT '',
	flavor_notes TEXT NOT NULL DEFAULT '',
	description  TEXT NOT NULL DEFAULT '',
	price        DOUBLE PRECISION NOT NULL DEFAULT 0,
	quantity     INTEGER NOT NULL DEFAULT 0,
	tags         TEXT[],
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS wines_name_vintage_idx ON wines (lower(name), COALESCE(vintage, 0));
CREATE INDEX IF NOT EXISTS wines_tags_idx ON wines USING GIN (tags);

CREATE TABLE IF NOT EXISTS background_jobs (
	id           BIGSERIAL PRIMARY KEY,
	job_id       UUID NOT NULL UNIQUE,
	task_type    TEXT NOT NULL,
	payload      JSONB NOT NULL DEFAULT '{}',
	queue        TEXT NOT NULL,
	status       TEXT NOT NULL,
	requested_by TEXT NOT NULL DEFAULT '',
	result       JSONB,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates the tables and indexes if they do not exist.
func (s *StoreImpl) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
