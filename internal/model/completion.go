package model

import "time"

// Completion is one recorded instance of performing a habit on a specific
// calendar date.  The date is a business date, not a timestamp, so a
// completion recorded at 23:59 and one at 00:01 never count against the
// same day twice because of timezone math.
//
// Rows are never updated after insert.  Undo soft-deletes them by setting
// DeletedAt; soft-deleted rows are excluded from today's count but do not
// retroactively lower the habit's total_completions.
//
// Fields:
//  ID             – primary key identifier.
//  HabitID        – owning habit.
//  CompletionDate – calendar date (YYYY-MM-DD) the completion counts
//                   against.
//  CreatedAt      – when the completion was recorded.
//  DeletedAt      – soft-delete marker, nil while the completion is live.
type Completion struct {
    ID             uint64     `json:"id"`              // habit_completions.id
    HabitID        uint64     `json:"habit_id"`        // habit_completions.habit_id
    CompletionDate string     `json:"completion_date"` // habit_completions.completion_date
    CreatedAt      time.Time  `json:"created_at"`      // habit_completions.created_at
    DeletedAt      *time.Time `json:"-"`               // habit_completions.deleted_at
}
