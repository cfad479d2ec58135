package main

import (
	"context"
	"log"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"

	"github.com/musclemap/musclemap/internal/config"
	"github.com/musclemap/musclemap/internal/database"
	"github.com/musclemap/musclemap/internal/handler"
	"github.com/musclemap/musclemap/internal/middleware"
	"github.com/musclemap/musclemap/internal/queue"
	"github.com/musclemap/musclemap/internal/repository"
	"github.com/musclemap/musclemap/internal/router"
	"github.com/musclemap/musclemap/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiterMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	groups := repository.NewMuscleGroupRepo(db)
	muscles := repository.NewMuscleRepo(db)
	exercises := repository.NewExerciseRepo(db)
	programs := repository.NewProgramRepo(db)

	authH := handler.NewAuthHandler(cfg, users)
	muscleH := handler.NewMuscleHandler(groups, muscles, cfg.DefaultPageLimit)
	exerciseH := handler.NewExerciseHandler(exercises, service.NewCatalogPublisher(), cfg.DefaultPageLimit)
	programH := handler.NewProgramHandler(programs)

	go queue.StartExerciseConsumer()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, limiterMW)
	router.RegisterCatalog(e, muscleH, exerciseH, programH, cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
