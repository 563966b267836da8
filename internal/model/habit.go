package model

import "time"

// Habit represents a tracked habit and its cumulative progress.  The
// total_completions counter is the habit's displayed "level" and is an
// immutable historical count: it grows by one for every recorded
// completion and is never decremented, not even when a completion is
// later soft-deleted.
//
// Fields:
//  ID                – primary key identifier.
//  Title             – display name; used only for display and the legacy
//                      prefix lookup, never as a mutation key.
//  Frequency         – descriptive cadence (e.g. "daily").
//  CompletionsPerDay – daily target; 999 is the legacy sentinel for
//                      tally-style habits with no real cap.
//  TotalCompletions  – all-time completion count, the habit's level.
//  IsUnbounded       – marks habits whose daily cap is not enforced.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Habit struct {
    ID                uint64    // habits.id
    Title             string    // habits.title
    Frequency         string    // habits.frequency
    CompletionsPerDay int       // habits.completions_per_day
    TotalCompletions  uint64    // habits.total_completions
    IsUnbounded       bool      // habits.is_unbounded
    CreatedAt         time.Time // habits.created_at
    UpdatedAt         time.Time // habits.updated_at
}
