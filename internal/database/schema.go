package database

import (
	"context"
	"database/sql"
)

// schema contains the DDL for the two tables this service owns.  Statements
// are idempotent so the bootstrap can run on every startup.
//
// habits.total_completions is the habit's "level": it only ever moves
// forward, and only via the recorder's single-statement increment.
// habit_completions rows are soft-deleted; the partial index keeps the
// per-day count query (habit_id + completion_date, deleted_at IS NULL)
// cheap regardless of history size.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS habits (
		id                  BIGSERIAL PRIMARY KEY,
		title               TEXT NOT NULL,
		frequency           TEXT NOT NULL DEFAULT 'daily',
		completions_per_day INTEGER NOT NULL DEFAULT 1 CHECK (completions_per_day > 0),
		total_completions   BIGINT NOT NULL DEFAULT 0 CHECK (total_completions >= 0),
		is_unbounded        BOOLEAN NOT NULL DEFAULT FALSE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS habit_completions (
		id              BIGSERIAL PRIMARY KEY,
		habit_id        BIGINT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
		completion_date DATE NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at      TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_habit_completions_day
		ON habit_completions (habit_id, completion_date)
		WHERE deleted_at IS NULL`,
}

// EnsureSchema creates the habits and habit_completions tables if they do
// not exist yet.  It is called once at startup, before the HTTP server
// begins accepting requests.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
