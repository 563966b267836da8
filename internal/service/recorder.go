package service

import (
    "context"

    "github.com/iliyamo/habit-tracker/internal/repository"
)

// Recorder atomically records (and undoes) completions for a habit,
// enforcing the daily cap.  Every mutation runs inside a single
// transaction that first takes a row lock on the habit, so the cap check,
// the completion insert and the counter increment cannot interleave with a
// concurrent request for the same habit.  A failure anywhere rolls the
// whole attempt back: the counter is never incremented without its
// completion row, and vice versa.
type Recorder struct {
    habits      *repository.HabitRepo
    completions *repository.CompletionRepo
    policy      *Policy
}

// NewRecorder constructs a Recorder.  All dependencies must be non-nil.
func NewRecorder(habits *repository.HabitRepo, completions *repository.CompletionRepo, policy *Policy) *Recorder {
    if habits == nil || completions == nil || policy == nil {
        panic("nil dependency passed to NewRecorder")
    }
    return &Recorder{habits: habits, completions: completions, policy: policy}
}

// RecordCompletion attempts to record one completion for the habit on the
// given calendar date.  Normal habits are rejected with
// repository.ErrDailyTargetMet once today's live completion count has
// reached completions_per_day; habits the Policy marks unbounded skip the
// check.  On success the returned state reflects the post-insert count and
// the incremented level.
func (r *Recorder) RecordCompletion(ctx context.Context, habitID uint64, day string) (*HabitState, error) {
    return r.record(ctx, habitID, day, true)
}

// RecordUnbounded records a completion without consulting the cap at all.
// It backs the high-completion-increment endpoint used by tally-style
// habits; everything except the cap check is identical to
// RecordCompletion.
func (r *Recorder) RecordUnbounded(ctx context.Context, habitID uint64, day string) (*HabitState, error) {
    return r.record(ctx, habitID, day, false)
}

func (r *Recorder) record(ctx context.Context, habitID uint64, day string, enforceCap bool) (*HabitState, error) {
    tx, err := r.habits.DB().BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Lock the habit row for the duration of the check and the writes.
    habit, err := r.habits.GetByIDForUpdateTx(ctx, tx, habitID)
    if err != nil {
        return nil, err
    }
    before, err := r.completions.CountForDateTx(ctx, tx, habitID, day)
    if err != nil {
        return nil, err
    }
    if enforceCap && !r.policy.IsUnbounded(habit) && before >= habit.CompletionsPerDay {
        // Idempotent rejection: no state has been mutated.
        return nil, repository.ErrDailyTargetMet
    }
    if _, err := r.completions.CreateTx(ctx, tx, habitID, day); err != nil {
        return nil, err
    }
    total, err := r.habits.IncrementTotalTx(ctx, tx, habitID)
    if err != nil {
        return nil, err
    }
    after, err := r.completions.CountForDateTx(ctx, tx, habitID, day)
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true

    habit.TotalCompletions = total
    st := stateFor(habit, after)
    return &st, nil
}

// UndoCompletion soft-deletes today's most recent live completion for the
// habit.  The habit's level is left untouched; only completions_today
// drops.  repository.ErrNothingToUndo is returned when the habit has no
// live completion on that date.
func (r *Recorder) UndoCompletion(ctx context.Context, habitID uint64, day string) (*HabitState, error) {
    tx, err := r.habits.DB().BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // The row lock keeps undo from racing a concurrent completion on the
    // same habit.
    habit, err := r.habits.GetByIDForUpdateTx(ctx, tx, habitID)
    if err != nil {
        return nil, err
    }
    if _, err := r.completions.SoftDeleteLatestTx(ctx, tx, habitID, day); err != nil {
        return nil, err
    }
    after, err := r.completions.CountForDateTx(ctx, tx, habitID, day)
    if err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true

    st := stateFor(habit, after)
    return &st, nil
}
