// Package sqlite is a single-file store for local development and tests.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"corkcount/internal/store"

	"github.com/mattn/go-sqlite3"
)

// Store implements store.PrimaryStore on SQLite. Tags are kept as a JSON
// array in a TEXT column.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dsn. In-memory databases are limited
// to one connection so every query sees the same data.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("database DSN cannot be empty")
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an already opened database handle.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() {
	s.db.Close()
}

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
	price        REAL NOT NULL DEFAULT 0,
	quantity     INTEGER NOT NULL DEFAULT 0,
	tags         TEXT,
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS wines_name_vintage_idx ON wines (lower(name), COALESCE(vintage, 0));

CREATE TABLE IF NOT EXISTS background_jobs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	job_id       TEXT NOT NULL UNIQUE,
	task_type    TEXT NOT NULL,
	payload      TEXT NOT NULL DEFAULT '{}',
	queue        TEXT NOT NULL,
	status       TEXT NOT NULL,
	requested_by TEXT NOT NULL DEFAULT '',
	result       TEXT,
	created_at   DATETIME NOT NULL,
	updated_at   DATETIME NOT NULL
);
`

// Migrate creates the tables and indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// encodeTags stores nil tags as NULL.
func encodeTags(tags []string) (sql.NullString, error) {
	if tags == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

var _ store.PrimaryStore = (*Store)(nil)
