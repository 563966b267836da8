package main // Entry point package

import (
	"context"
	"log" // Logging library

	"github.com/joho/godotenv"     // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/habit-tracker/internal/config"
	"github.com/iliyamo/habit-tracker/internal/database"
	"github.com/iliyamo/habit-tracker/internal/handler"
	"github.com/iliyamo/habit-tracker/internal/queue"
	"github.com/iliyamo/habit-tracker/internal/repository"
	"github.com/iliyamo/habit-tracker/internal/router"
	"github.com/iliyamo/habit-tracker/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	// Redis is optional: nil disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, caching and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	habitRepo := repository.NewHabitRepo(db)
	completionRepo := repository.NewCompletionRepo(db)
	policy := service.NewPolicy(cfg.UnboundedHabitIDs)
	query := service.NewQuery(habitRepo, completionRepo)
	recorder := service.NewRecorder(habitRepo, completionRepo, policy)
	habits := handler.NewHabitHandler(query, recorder, rdb, cacheCfg)

	e := echo.New() // Create Echo instance
	router.RegisterRoutes(e)
	router.RegisterHabits(e, habits, rdb, cacheCfg, rlCfg)

	// Consume completion.recorded events into logs/completions.log.
	go func() {
		if err := queue.StartCompletionConsumer(); err != nil {
			log.Printf("completion consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
