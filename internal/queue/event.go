// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// CompletionRecordedEvent is published after a completion has been
// committed.  It carries enough information for downstream consumers to
// log, chart streaks or trigger reminders without querying the primary
// database.
type CompletionRecordedEvent struct {
    HabitID          uint64 `json:"habit_id"`
    Title            string `json:"title"`
    CompletionDate   string `json:"completion_date"`
    CompletionsToday int    `json:"completions_today"`
    TotalCompletions uint64 `json:"total_completions"`
    Level            uint64 `json:"level"`
    Unbounded        bool   `json:"unbounded"`
    RecordedAt       string `json:"recorded_at"`
}
