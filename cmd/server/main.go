package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/moodcast/backend/internal/config"
	"github.com/moodcast/backend/internal/delivery/http"
	"github.com/moodcast/backend/internal/predictor"
	"github.com/moodcast/backend/internal/repository/postgres"
	"github.com/moodcast/backend/internal/service"
)

func main() {
	// Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	// Storage
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, closeRepo := openRepository(ctx, cfg, log)
	defer closeRepo()

	// Dependency Injection: Services
	weatherSvc := service.NewWeatherService(cfg.WeatherBaseURL, cfg.WeatherTimeout, log)
	cities, err := service.NewCityCatalog(cfg.DefaultCity)
	if err != nil {
		log.Error("invalid default city", "city", cfg.DefaultCity, "error", err)
		os.Exit(1)
	}
	moodSvc := service.NewMoodService(repo, weatherSvc, log)

	redisClient := openRedis(ctx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}
	newCache := func(policy service.ExpiryPolicy) service.PredictionCache {
		if redisClient != nil {
			return service.NewRedisCache(redisClient, policy, log)
		}
		return service.NewMemoryCache(policy, time.Now)
	}

	dailySvc := service.NewPredictionService(predictor.SimpleStrategy{}, weatherSvc, moodSvc, log,
		service.WithCache(newCache(service.CalendarDayPolicy{Location: cfg.DailyLocation()})),
	)
	analysisSvc := service.NewPredictionService(predictor.NewAnalysisStrategy(cfg.HistoryWindow(), time.Now), weatherSvc, moodSvc, log,
		service.WithCache(newCache(service.TTLPolicy{TTL: cfg.PredictionCacheTTL})),
		service.WithAnalysisSummary(),
	)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Moodcast API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, http.Services{
		DailyPrediction: dailySvc,
		Prediction:      analysisSvc,
		Moods:           moodSvc,
		Weather:         weatherSvc,
		Cities:          cities,
		Repo:            repo,
	})

	// Graceful shutdown
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warn("server forced to shutdown", "error", err)
	}
	log.Info("server exited gracefully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// openRepository connects to PostgreSQL, falling back to a seeded in-memory
// store when no database is configured or reachable
func openRepository(ctx context.Context, cfg *config.Config, log *slog.Logger) (service.MoodRepository, func()) {
	if cfg.DatabaseURL == "" {
		log.Info("DATABASE_URL not set, using in-memory mood history")
		return postgres.NewSeededMemoryRepository(time.Now()), func() {}
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err == nil {
		err = pool.Ping(ctx)
	}
	if err != nil {
		log.Warn("could not connect to database, using in-memory mood history", "error", err)
		if pool != nil {
			pool.Close()
		}
		return postgres.NewSeededMemoryRepository(time.Now()), func() {}
	}

	repo := postgres.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error("failed to prepare database schema", "error", err)
		pool.Close()
		os.Exit(1)
	}

	log.Info("connected to PostgreSQL")
	return repo, pool.Close
}

// openRedis returns nil when no Redis is configured or reachable
func openRedis(ctx context.Context, cfg *config.Config, log *slog.Logger) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Warn("invalid REDIS_URL, using in-process prediction cache", "error", err)
		return nil
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("could not connect to redis, using in-process prediction cache", "error", err)
		client.Close()
		return nil
	}

	log.Info("connected to Redis")
	return client
}
