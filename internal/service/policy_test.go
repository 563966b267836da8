package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/habit-tracker/internal/model"
)

func TestPolicyIsUnbounded(t *testing.T) {
	p := NewPolicy([]uint64{14})

	cases := []struct {
		name  string
		habit model.Habit
		want  bool
	}{
		{"normal habit", model.Habit{ID: 1, CompletionsPerDay: 1}, false},
		{"column flag set", model.Habit{ID: 2, CompletionsPerDay: 1, IsUnbounded: true}, true},
		{"legacy sentinel target", model.Habit{ID: 3, CompletionsPerDay: 999}, true},
		{"above sentinel", model.Habit{ID: 4, CompletionsPerDay: 1000}, true},
		{"just below sentinel", model.Habit{ID: 5, CompletionsPerDay: 998}, false},
		{"allow-listed id", model.Habit{ID: 14, CompletionsPerDay: 1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.IsUnbounded(&tc.habit))
		})
	}
}

func TestPolicyEmptyAllowList(t *testing.T) {
	p := NewPolicy(nil)
	assert.False(t, p.IsUnbounded(&model.Habit{ID: 14, CompletionsPerDay: 3}))
}
