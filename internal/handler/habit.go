package handler

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/habit-tracker/internal/config"
    "github.com/iliyamo/habit-tracker/internal/middleware"
    "github.com/iliyamo/habit-tracker/internal/queue"
    "github.com/iliyamo/habit-tracker/internal/repository"
    "github.com/iliyamo/habit-tracker/internal/service"
)

// HabitHandler exposes habit state reads and completion writes over HTTP.
// Business-rule rejections (not found, daily target met, nothing to undo)
// map to 404/409 via the repository sentinels; everything else is an
// infrastructure failure surfaced as 500 and logged with full detail.
type HabitHandler struct {
    Query    *service.Query    // read side: habit state and listings
    Recorder *service.Recorder // write side: record/undo completions
    Redis    *redis.Client     // optional, for cache invalidation after writes
    CacheCfg config.CacheConfig
}

// NewHabitHandler constructs a HabitHandler.  Query and Recorder must be
// non-nil; Redis may be nil when caching is disabled.
func NewHabitHandler(query *service.Query, recorder *service.Recorder, rdb *redis.Client, cacheCfg config.CacheConfig) *HabitHandler {
    if query == nil || recorder == nil {
        panic("nil service passed to NewHabitHandler")
    }
    return &HabitHandler{Query: query, Recorder: recorder, Redis: rdb, CacheCfg: cacheCfg}
}

// businessDate resolves the calendar date a request counts against.  The
// client may pass its local date via ?date=YYYY-MM-DD so a completion at
// 23:30 in Tehran does not land on tomorrow's UTC date; otherwise the
// server's UTC date is used.
func businessDate(c echo.Context) (string, error) {
    if d := c.QueryParam("date"); d != "" {
        if _, err := time.Parse("2006-01-02", d); err != nil {
            return "", err
        }
        return d, nil
    }
    return time.Now().UTC().Format("2006-01-02"), nil
}

func habitID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, errors.New("invalid habit id")
    }
    return id, nil
}

// ListHabits handles GET /api/habits.  It returns today's state for every
// habit, ordered by id.  An empty habit table yields an empty items array.
func (h *HabitHandler) ListHabits(c echo.Context) error {
    day, err := businessDate(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
    }
    states, err := h.Query.ListHabitStates(c.Request().Context(), day)
    if err != nil {
        c.Logger().Errorf("list habits: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": states})
}

// GetHabit handles GET /api/habits/:id.  It returns the habit's state for
// the requested date (default: today, UTC).
func (h *HabitHandler) GetHabit(c echo.Context) error {
    id, err := habitID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid habit id"})
    }
    day, err := businessDate(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
    }
    st, err := h.Query.GetHabitState(c.Request().Context(), id, day)
    if err != nil {
        if errors.Is(err, repository.ErrHabitNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "habit not found"})
        }
        c.Logger().Errorf("get habit %d: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, st)
}

// GetHabitByTitle handles GET /api/habits/by-title/:prefix, the legacy
// lookup path.  The prefix resolves to a habit id once, then the normal
// id-based state query runs.
func (h *HabitHandler) GetHabitByTitle(c echo.Context) error {
    prefix := c.Param("prefix")
    if prefix == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title prefix is required"})
    }
    day, err := businessDate(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
    }
    st, err := h.Query.GetHabitStateByTitlePrefix(c.Request().Context(), prefix, day)
    if err != nil {
        if errors.Is(err, repository.ErrHabitNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "habit not found"})
        }
        c.Logger().Errorf("get habit by title %q: %v", prefix, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, st)
}

// ListCompletions handles GET /api/habits/:id/completions.  It returns
// the habit's recent live completions, newest first.  The optional
// ?limit= parameter caps the page size (default 30, max 365).
func (h *HabitHandler) ListCompletions(c echo.Context) error {
    id, err := habitID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid habit id"})
    }
    limit := 30
    if raw := c.QueryParam("limit"); raw != "" {
        n, err := strconv.Atoi(raw)
        if err != nil || n < 1 {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
        }
        limit = n
    }
    if limit > 365 {
        limit = 365
    }
    completions, err := h.Query.ListCompletions(c.Request().Context(), id, limit)
    if err != nil {
        if errors.Is(err, repository.ErrHabitNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "habit not found"})
        }
        c.Logger().Errorf("list completions habit %d: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": completions})
}

// Complete handles POST /api/habits/:id/complete.  It records one
// completion for today, enforcing the daily cap for normal habits.  A 409
// means "already done today" and is informational, not retryable within
// the same day.
func (h *HabitHandler) Complete(c echo.Context) error {
    return h.record(c, false)
}

// HighCompletionIncrement handles
// POST /api/habits/:id/high-completion-increment, the tally-style variant
// that records a completion without any cap check.
func (h *HabitHandler) HighCompletionIncrement(c echo.Context) error {
    return h.record(c, true)
}

func (h *HabitHandler) record(c echo.Context, unbounded bool) error {
    id, err := habitID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid habit id"})
    }
    day, err := businessDate(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
    }
    ctx := c.Request().Context()
    var st *service.HabitState
    if unbounded {
        st, err = h.Recorder.RecordUnbounded(ctx, id, day)
    } else {
        st, err = h.Recorder.RecordCompletion(ctx, id, day)
    }
    if err != nil {
        if errors.Is(err, repository.ErrHabitNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "habit not found"})
        }
        if errors.Is(err, repository.ErrDailyTargetMet) {
            return c.JSON(http.StatusConflict, echo.Map{
                "error":   "Daily completion target already met",
                "message": "completions_per_day reached for today; nothing was recorded",
            })
        }
        c.Logger().Errorf("record completion habit %d: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    // The completion is committed; cached reads for this habit are stale now.
    middleware.InvalidateHabit(ctx, h.Redis, h.CacheCfg, id)

    // Best effort: a lost event must not fail a committed completion.
    ev := queue.CompletionRecordedEvent{
        HabitID:          st.ID,
        Title:            st.Title,
        CompletionDate:   day,
        CompletionsToday: st.CompletionsToday,
        TotalCompletions: st.TotalCompletions,
        Level:            st.Level,
        Unbounded:        unbounded,
        RecordedAt:       time.Now().UTC().Format(time.RFC3339),
    }
    go func() { _ = queue.PublishCompletionRecorded(context.Background(), ev) }()

    return c.JSON(http.StatusOK, st)
}

// UndoComplete handles DELETE /api/habits/:id/complete.  It soft-deletes
// today's most recent live completion.  The habit's level is not
// decremented; only completions_today drops.  Returns 409 when there is
// nothing to undo.
func (h *HabitHandler) UndoComplete(c echo.Context) error {
    id, err := habitID(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid habit id"})
    }
    day, err := businessDate(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
    }
    ctx := c.Request().Context()
    st, err := h.Recorder.UndoCompletion(ctx, id, day)
    if err != nil {
        if errors.Is(err, repository.ErrHabitNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "habit not found"})
        }
        if errors.Is(err, repository.ErrNothingToUndo) {
            return c.JSON(http.StatusConflict, echo.Map{
                "error":   "no completion to undo",
                "message": "the habit has no live completion for today",
            })
        }
        c.Logger().Errorf("undo completion habit %d: %v", id, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    middleware.InvalidateHabit(ctx, h.Redis, h.CacheCfg, id)

    return c.JSON(http.StatusOK, st)
}
