// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrHabitNotFound indicates that a habit identifier (or legacy
// title prefix) did not resolve to a row, while ErrDailyTargetMet signals
// that recording another completion today would exceed the habit's cap.
package repository

import "errors"

// ErrHabitNotFound is returned when a habit lookup resolves to no row.
// Handlers should translate this into an HTTP 404 response.
var ErrHabitNotFound = errors.New("habit not found")

// ErrDailyTargetMet is returned when a completion cannot be recorded
// because the habit has already reached its daily target.  This is an
// expected business outcome, not an infrastructure failure; handlers
// should translate it into an HTTP 409 response.
var ErrDailyTargetMet = errors.New("daily completion target already met")

// ErrNothingToUndo is returned when an undo finds no live completion for
// the habit on the given date.  Handlers should translate it into an
// HTTP 409 response.
var ErrNothingToUndo = errors.New("no completion to undo")
