package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/habit-tracker/internal/config"
	"github.com/iliyamo/habit-tracker/internal/handler"
	"github.com/iliyamo/habit-tracker/internal/middleware"
)

// RegisterRoutes registers routes that carry no middleware on the provided
// Echo instance.  Currently it exposes only a health check, used by load
// balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterHabits registers the habit API under /api.  Reads go through the
// Redis response cache; every route goes through the token-bucket rate
// limiter.  Both middlewares degrade to pass-through when rdb is nil.
func RegisterHabits(e *echo.Echo, h *handler.HabitHandler, rdb *redis.Client, cacheCfg config.CacheConfig, rlCfg config.RateLimitConfig) {
	g := e.Group(
		"/api",
		middleware.NewTokenBucket(rlCfg, rdb),
		middleware.NewRedisCache(cacheCfg, rdb),
	)

	// Read side: habit state for one habit, the legacy title-prefix lookup
	// and the full list with today's counts.
	g.GET("/habits", h.ListHabits)
	g.GET("/habits/:id", h.GetHabit)
	g.GET("/habits/by-title/:prefix", h.GetHabitByTitle)
	g.GET("/habits/:id/completions", h.ListCompletions)

	// Write side: record a completion (cap enforced), the unbounded
	// tally variant, and the undo path that soft-deletes today's most
	// recent completion.
	g.POST("/habits/:id/complete", h.Complete)
	g.POST("/habits/:id/high-completion-increment", h.HighCompletionIncrement)
	g.DELETE("/habits/:id/complete", h.UndoComplete)
}
