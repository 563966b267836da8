package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/habit-tracker/internal/model"
)

// CompletionRepo persists individual completion events.  Completions are
// insert-only; undo soft-deletes them by setting deleted_at.  Counting
// queries always filter deleted_at IS NULL and use date equality so the
// partial index on (habit_id, completion_date) applies.
type CompletionRepo struct {
    db *sql.DB
}

// NewCompletionRepo returns a new CompletionRepo bound to the given database.
func NewCompletionRepo(db *sql.DB) *CompletionRepo { return &CompletionRepo{db: db} }

const countQuery = `SELECT COUNT(*) FROM habit_completions
                    WHERE habit_id = $1 AND completion_date = $2 AND deleted_at IS NULL`

// CountForDate returns the number of live (non-deleted) completions for a
// habit on the given calendar date.
func (r *CompletionRepo) CountForDate(ctx context.Context, habitID uint64, day string) (int, error) {
    var n int
    if err := r.db.QueryRowContext(ctx, countQuery, habitID, day).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}

// CountForDateTx is CountForDate inside an existing transaction.  The
// recorder uses it both for the cap check (after locking the habit row)
// and for the post-insert recount it returns to the client.
func (r *CompletionRepo) CountForDateTx(ctx context.Context, tx *sql.Tx, habitID uint64, day string) (int, error) {
    var n int
    if err := tx.QueryRowContext(ctx, countQuery, habitID, day).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}

// CreateTx inserts one completion row for (habitID, day) within the scope
// of an existing transaction and returns the generated id.  The caller
// must commit or rollback the transaction.
func (r *CompletionRepo) CreateTx(ctx context.Context, tx *sql.Tx, habitID uint64, day string) (uint64, error) {
    const q = `INSERT INTO habit_completions (habit_id, completion_date)
               VALUES ($1, $2) RETURNING id`
    var id uint64
    if err := tx.QueryRowContext(ctx, q, habitID, day).Scan(&id); err != nil {
        return 0, err
    }
    return id, nil
}

// SoftDeleteLatestTx marks the most recent live completion for
// (habitID, day) as deleted and returns its id.  The habit's
// total_completions is deliberately left untouched: the level is an
// immutable historical count.  ErrNothingToUndo is returned when no live
// completion exists for that day.
func (r *CompletionRepo) SoftDeleteLatestTx(ctx context.Context, tx *sql.Tx, habitID uint64, day string) (uint64, error) {
    const q = `UPDATE habit_completions SET deleted_at = NOW()
               WHERE id = (
                   SELECT id FROM habit_completions
                   WHERE habit_id = $1 AND completion_date = $2 AND deleted_at IS NULL
                   ORDER BY id DESC LIMIT 1
               )
               RETURNING id`
    var id uint64
    if err := tx.QueryRowContext(ctx, q, habitID, day).Scan(&id); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return 0, ErrNothingToUndo
        }
        return 0, err
    }
    return id, nil
}

// ListForHabit returns the habit's live completions, newest first, capped
// at limit rows.  The date is rendered as YYYY-MM-DD text so it round-trips
// as a business date rather than a midnight timestamp.
func (r *CompletionRepo) ListForHabit(ctx context.Context, habitID uint64, limit int) ([]model.Completion, error) {
    const q = `SELECT id, habit_id, to_char(completion_date, 'YYYY-MM-DD'), created_at
               FROM habit_completions
               WHERE habit_id = $1 AND deleted_at IS NULL
               ORDER BY id DESC
               LIMIT $2`
    rows, err := r.db.QueryContext(ctx, q, habitID, limit)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    completions := make([]model.Completion, 0)
    for rows.Next() {
        var c model.Completion
        if err := rows.Scan(&c.ID, &c.HabitID, &c.CompletionDate, &c.CreatedAt); err != nil {
            return nil, err
        }
        completions = append(completions, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return completions, nil
}

// CountByHabitForDate returns live completion counts for every habit that
// has at least one completion on the given date, keyed by habit id.
// Habits absent from the map have a zero count.  Used by the list endpoint
// to assemble today's state for all habits in two queries.
func (r *CompletionRepo) CountByHabitForDate(ctx context.Context, day string) (map[uint64]int, error) {
    const q = `SELECT habit_id, COUNT(*) FROM habit_completions
               WHERE completion_date = $1 AND deleted_at IS NULL
               GROUP BY habit_id`
    rows, err := r.db.QueryContext(ctx, q, day)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    counts := make(map[uint64]int)
    for rows.Next() {
        var habitID uint64
        var n int
        if err := rows.Scan(&habitID, &n); err != nil {
            return nil, err
        }
        counts[habitID] = n
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return counts, nil
}
