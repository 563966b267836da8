package service

import (
    "context"

    "github.com/iliyamo/habit-tracker/internal/model"
    "github.com/iliyamo/habit-tracker/internal/repository"
)

// HabitState is the API view of a habit on a given day.  Level mirrors
// TotalCompletions one-to-one; it exists as a separate field because the
// client vocabulary is "level" while the storage vocabulary is a counter.
type HabitState struct {
    ID                uint64 `json:"id"`
    Title             string `json:"title"`
    Frequency         string `json:"frequency"`
    CompletionsPerDay int    `json:"completions_per_day"`
    CompletionsToday  int    `json:"completions_today"`
    TotalCompletions  uint64 `json:"total_completions"`
    Level             uint64 `json:"level"`
    IsComplete        bool   `json:"is_complete"`
}

// Query answers "what is the current state of habit H on day D?".  It is a
// pure read: no state is mutated and storage errors are propagated, not
// retried.
type Query struct {
    habits      *repository.HabitRepo
    completions *repository.CompletionRepo
}

// NewQuery constructs a Query over the given repositories.
func NewQuery(habits *repository.HabitRepo, completions *repository.CompletionRepo) *Query {
    if habits == nil || completions == nil {
        panic("nil repository passed to NewQuery")
    }
    return &Query{habits: habits, completions: completions}
}

func stateFor(h *model.Habit, completionsToday int) HabitState {
    return HabitState{
        ID:                h.ID,
        Title:             h.Title,
        Frequency:         h.Frequency,
        CompletionsPerDay: h.CompletionsPerDay,
        CompletionsToday:  completionsToday,
        TotalCompletions:  h.TotalCompletions,
        Level:             h.TotalCompletions,
        IsComplete:        completionsToday >= h.CompletionsPerDay,
    }
}

// GetHabitState returns the habit's state for the given calendar date.
// repository.ErrHabitNotFound propagates when the id does not resolve.
func (s *Query) GetHabitState(ctx context.Context, habitID uint64, day string) (*HabitState, error) {
    h, err := s.habits.GetByID(ctx, habitID)
    if err != nil {
        return nil, err
    }
    n, err := s.completions.CountForDate(ctx, habitID, day)
    if err != nil {
        return nil, err
    }
    st := stateFor(h, n)
    return &st, nil
}

// GetHabitStateByTitlePrefix resolves a legacy title prefix to an id and
// then runs the normal id-based state query.  The prefix is a display-era
// leftover; resolution happens once, up front, and everything after works
// on the identifier.
func (s *Query) GetHabitStateByTitlePrefix(ctx context.Context, prefix string, day string) (*HabitState, error) {
    id, err := s.habits.ResolveByTitlePrefix(ctx, prefix)
    if err != nil {
        return nil, err
    }
    return s.GetHabitState(ctx, id, day)
}

// ListCompletions returns the habit's recent live completions, newest
// first.  The habit is loaded first so a missing id surfaces as
// repository.ErrHabitNotFound rather than an empty history.
func (s *Query) ListCompletions(ctx context.Context, habitID uint64, limit int) ([]model.Completion, error) {
    if _, err := s.habits.GetByID(ctx, habitID); err != nil {
        return nil, err
    }
    return s.completions.ListForHabit(ctx, habitID, limit)
}

// ListHabitStates returns today's state for every habit, ordered by id.
// Counts for all habits are fetched in one grouped query and zipped with
// the habit list.
func (s *Query) ListHabitStates(ctx context.Context, day string) ([]HabitState, error) {
    habits, err := s.habits.List(ctx)
    if err != nil {
        return nil, err
    }
    counts, err := s.completions.CountByHabitForDate(ctx, day)
    if err != nil {
        return nil, err
    }
    states := make([]HabitState, 0, len(habits))
    for i := range habits {
        states = append(states, stateFor(&habits[i], counts[habits[i].ID]))
    }
    return states, nil
}
