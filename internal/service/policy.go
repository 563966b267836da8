package service

import "github.com/iliyamo/habit-tracker/internal/model"

// UnboundedSentinel is the legacy completions_per_day value used to mark
// tally-style habits before is_unbounded existed as a column.  Habits at or
// above it are treated as unbounded regardless of the column.
const UnboundedSentinel = 999

// Policy decides which habits are exempt from the daily completion cap.
// The decision is data-first (the habit's is_unbounded column or the
// legacy sentinel target); AllowIDs carries the old hard-coded allow-list
// as configuration so deployments that still rely on it keep working while
// they migrate to the column.
type Policy struct {
    allowIDs map[uint64]struct{}
}

// NewPolicy builds a Policy from the configured allow-list.
func NewPolicy(allowIDs []uint64) *Policy {
    m := make(map[uint64]struct{}, len(allowIDs))
    for _, id := range allowIDs {
        m[id] = struct{}{}
    }
    return &Policy{allowIDs: m}
}

// IsUnbounded reports whether the habit's daily cap should be skipped.
func (p *Policy) IsUnbounded(h *model.Habit) bool {
    if h.IsUnbounded {
        return true
    }
    if h.CompletionsPerDay >= UnboundedSentinel {
        return true
    }
    _, ok := p.allowIDs[h.ID]
    return ok
}
