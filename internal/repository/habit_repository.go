package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/habit-tracker/internal/model"
)

// HabitRepo provides read and increment operations for habits.  Habits are
// seeded out of band (admin/seed data); this service reads them and bumps
// their total_completions counter, nothing else.  All timestamp fields are
// stored in UTC.
type HabitRepo struct {
    db *sql.DB
}

// NewHabitRepo returns a new HabitRepo bound to the given database.
func NewHabitRepo(db *sql.DB) *HabitRepo { return &HabitRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions that
// span the habit and completion repositories.
func (r *HabitRepo) DB() *sql.DB { return r.db }

const habitColumns = `id, title, frequency, completions_per_day, total_completions, is_unbounded, created_at, updated_at`

func scanHabit(row *sql.Row) (*model.Habit, error) {
    var h model.Habit
    err := row.Scan(&h.ID, &h.Title, &h.Frequency, &h.CompletionsPerDay,
        &h.TotalCompletions, &h.IsUnbounded, &h.CreatedAt, &h.UpdatedAt)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrHabitNotFound
        }
        return nil, err
    }
    return &h, nil
}

// GetByID loads a habit by its identifier.  ErrHabitNotFound is returned
// when no habit with that id exists.
func (r *HabitRepo) GetByID(ctx context.Context, habitID uint64) (*model.Habit, error) {
    const q = `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`
    return scanHabit(r.db.QueryRowContext(ctx, q, habitID))
}

// GetByIDForUpdateTx loads a habit inside a transaction and takes a row
// lock on it.  The lock serializes concurrent completion attempts for the
// same habit: the cap check, the insert and the increment all happen while
// the row is held, so two racing requests cannot both pass the check.
func (r *HabitRepo) GetByIDForUpdateTx(ctx context.Context, tx *sql.Tx, habitID uint64) (*model.Habit, error) {
    const q = `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 FOR UPDATE`
    return scanHabit(tx.QueryRowContext(ctx, q, habitID))
}

// ResolveByTitlePrefix maps a legacy title prefix to a habit identifier.
// The lowest id wins when several titles share the prefix, which keeps the
// lookup deterministic under duplicate titles.  The returned id should be
// fed straight into the id-based paths; titles are never a mutation key.
func (r *HabitRepo) ResolveByTitlePrefix(ctx context.Context, prefix string) (uint64, error) {
    const q = `SELECT id FROM habits WHERE title LIKE $1 || '%' ORDER BY id LIMIT 1`
    var id uint64
    if err := r.db.QueryRowContext(ctx, q, prefix).Scan(&id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrHabitNotFound
        }
        return 0, err
    }
    return id, nil
}

// List returns all habits ordered by id.  When no habits exist, an empty
// slice is returned.
func (r *HabitRepo) List(ctx context.Context) ([]model.Habit, error) {
    const q = `SELECT ` + habitColumns + ` FROM habits ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    habits := make([]model.Habit, 0)
    for rows.Next() {
        var h model.Habit
        if err := rows.Scan(&h.ID, &h.Title, &h.Frequency, &h.CompletionsPerDay,
            &h.TotalCompletions, &h.IsUnbounded, &h.CreatedAt, &h.UpdatedAt); err != nil {
            return nil, err
        }
        habits = append(habits, h)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return habits, nil
}

// IncrementTotalTx bumps total_completions by exactly one and returns the
// new value.  The read-modify-write happens in a single UPDATE..RETURNING
// statement at the storage layer so concurrent increments cannot lose
// updates.  This is the only code path that writes the counter.
func (r *HabitRepo) IncrementTotalTx(ctx context.Context, tx *sql.Tx, habitID uint64) (uint64, error) {
    const q = `UPDATE habits
               SET total_completions = total_completions + 1, updated_at = NOW()
               WHERE id = $1
               RETURNING total_completions`
    var total uint64
    if err := tx.QueryRowContext(ctx, q, habitID).Scan(&total); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrHabitNotFound
        }
        return 0, err
    }
    return total, nil
}
