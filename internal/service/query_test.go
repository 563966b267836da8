package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/habit-tracker/internal/repository"
)

const (
	selectByIDRe = `SELECT (.+) FROM habits WHERE id = \$1`
	resolveRe    = `SELECT id FROM habits WHERE title LIKE \$1`
	listRe       = `SELECT (.+) FROM habits ORDER BY id`
	groupCountRe = `SELECT habit_id, COUNT\(\*\) FROM habit_completions`
)

func newQuery(t *testing.T) (*Query, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewQuery(repository.NewHabitRepo(db), repository.NewCompletionRepo(db)), mock
}

func TestGetHabitState(t *testing.T) {
	q, mock := newQuery(t)
	day := "2026-09-01"

	mock.ExpectQuery(selectByIDRe).WithArgs(uint64(7)).WillReturnRows(habitRow(7, "Read", 1, 4, false))
	mock.ExpectQuery(countRe).WithArgs(uint64(7), day).WillReturnRows(countRows(0))

	st, err := q.GetHabitState(context.Background(), 7, day)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), st.ID)
	assert.Equal(t, "Read", st.Title)
	assert.Equal(t, 0, st.CompletionsToday)
	assert.Equal(t, uint64(4), st.TotalCompletions)
	assert.Equal(t, uint64(4), st.Level)
	assert.False(t, st.IsComplete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHabitStateComplete(t *testing.T) {
	q, mock := newQuery(t)
	day := "2026-09-01"

	mock.ExpectQuery(selectByIDRe).WithArgs(uint64(7)).WillReturnRows(habitRow(7, "Read", 2, 9, false))
	mock.ExpectQuery(countRe).WithArgs(uint64(7), day).WillReturnRows(countRows(2))

	st, err := q.GetHabitState(context.Background(), 7, day)
	require.NoError(t, err)
	assert.True(t, st.IsComplete)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHabitStateNotFound(t *testing.T) {
	q, mock := newQuery(t)

	mock.ExpectQuery(selectByIDRe).WithArgs(uint64(99)).WillReturnError(sql.ErrNoRows)

	_, err := q.GetHabitState(context.Background(), 99, "2026-09-01")
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHabitStateByTitlePrefix(t *testing.T) {
	q, mock := newQuery(t)
	day := "2026-09-01"

	// The prefix resolves to an id once; state is then read by id.
	mock.ExpectQuery(resolveRe).WithArgs("Rea").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(selectByIDRe).WithArgs(uint64(7)).WillReturnRows(habitRow(7, "Read", 1, 4, false))
	mock.ExpectQuery(countRe).WithArgs(uint64(7), day).WillReturnRows(countRows(1))

	st, err := q.GetHabitStateByTitlePrefix(context.Background(), "Rea", day)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), st.ID)
	assert.Equal(t, 1, st.CompletionsToday)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHabitStateByTitlePrefixNotFound(t *testing.T) {
	q, mock := newQuery(t)

	mock.ExpectQuery(resolveRe).WithArgs("ZZZ").WillReturnError(sql.ErrNoRows)

	_, err := q.GetHabitStateByTitlePrefix(context.Background(), "ZZZ", "2026-09-01")
	assert.ErrorIs(t, err, repository.ErrHabitNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHabitStates(t *testing.T) {
	q, mock := newQuery(t)
	day := "2026-09-01"

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(listRe).WillReturnRows(
		sqlmock.NewRows(habitCols).
			AddRow(1, "Read", "daily", 1, 4, false, now, now).
			AddRow(2, "Pushups", "daily", 999, 50, false, now, now))
	mock.ExpectQuery(groupCountRe).WithArgs(day).WillReturnRows(
		sqlmock.NewRows([]string{"habit_id", "count"}).AddRow(2, 12))

	states, err := q.ListHabitStates(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, states, 2)
	// Habit 1 has no completion row today: zero count, not complete.
	assert.Equal(t, 0, states[0].CompletionsToday)
	assert.False(t, states[0].IsComplete)
	assert.Equal(t, 12, states[1].CompletionsToday)
	assert.Equal(t, uint64(50), states[1].Level)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListHabitStatesEmpty(t *testing.T) {
	q, mock := newQuery(t)
	day := "2026-09-01"

	mock.ExpectQuery(listRe).WillReturnRows(sqlmock.NewRows(habitCols))
	mock.ExpectQuery(groupCountRe).WithArgs(day).
		WillReturnRows(sqlmock.NewRows([]string{"habit_id", "count"}))

	states, err := q.ListHabitStates(context.Background(), day)
	require.NoError(t, err)
	assert.Empty(t, states)
	assert.NoError(t, mock.ExpectationsWereMet())
}
