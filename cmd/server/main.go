package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tempora-backend/internal/cache"
	"tempora-backend/internal/config"
	"tempora-backend/internal/database"
	"tempora-backend/internal/handlers"
	"tempora-backend/internal/repository"
	"tempora-backend/internal/router"
	"tempora-backend/internal/services"
	"tempora-backend/internal/websocket"
)

func main() {
	log.Println("🚀 Starting Tempora Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	taskRepo := repository.NewTaskRepo(pool)
	sessionRepo := repository.NewTimerSessionRepo(pool)
	activityLogRepo := repository.NewActivityLogRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)

	// ──── Initialize Services ────
	responseCache := cache.New(redisClients.Cache, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	eventPublisher := services.NewRedisEventPublisher(redisClients.Cache)

	taskService := services.NewTaskService(taskRepo, responseCache)
	activityLogService := services.NewActivityLogService(activityLogRepo, taskRepo, responseCache)
	timerService := services.NewTimerService(sessionRepo, taskRepo, activityLogService, eventPublisher, responseCache)
	statsService := services.NewStatsService(sessionRepo, activityLogRepo, responseCache)
	timeTreeService := services.NewTimeTreeService(activityLogRepo, responseCache)
	profileService := services.NewProfileService(profileRepo)

	// ──── Step 5: Backfill Unlogged Timer Sessions ────
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	migrated, err := services.BackfillTimerLogs(startupCtx, sessionRepo, activityLogRepo)
	cancelStartup()
	if err != nil {
		log.Fatalf("✗ Timer log backfill failed: %v", err)
	}
	if migrated > 0 {
		log.Printf("✓ Backfilled %d unlogged timer session(s)", migrated)
	}

	// ──── Initialize Handlers ────
	taskHandler := handlers.NewTaskHandler(taskService)
	timerHandler := handlers.NewTimerHandler(timerService)
	activityLogHandler := handlers.NewActivityLogHandler(activityLogService)
	statsHandler := handlers.NewStatsHandler(statsService)
	timeTreeHandler := handlers.NewTimeTreeHandler(timeTreeService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// ──── Step 6: Start WebSocket Hub ────
	hubCtx, cancelHub := context.WithCancel(context.Background())
	defer cancelHub()
	wsHub := websocket.NewHub(redisClients.PubSub, services.TimerEventChannel)
	go wsHub.Run(hubCtx)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		taskHandler,
		timerHandler,
		activityLogHandler,
		statsHandler,
		timeTreeHandler,
		profileHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		cancelHub()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Tempora Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/timer/events", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
