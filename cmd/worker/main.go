package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/logger"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/shutdown"
	"github.com/eyevinn-osaas/ograf-editor/internal/repositories"
	"github.com/eyevinn-osaas/ograf-editor/internal/storage"
	"github.com/eyevinn-osaas/ograf-editor/internal/worker"
	"github.com/eyevinn-osaas/ograf-editor/internal/worker/queue"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Format:      getEnv("LOG_FORMAT", "json"),
		ServiceName: "ograf-editor-worker",
		AddSource:   getEnv("LOG_SOURCE", "false") == "true",
	})

	log.Info("starting publish worker")

	dbURL := mustEnv(log, "DATABASE_URL")
	redisAddr := mustEnv(log, "REDIS_ADDR")
	queueName := getEnv("JOB_QUEUE_NAME", queue.DefaultQueueName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownMgr := shutdown.NewManager(log, 30*time.Second)
	shutdownMgr.Register("worker-loop", func(ctx context.Context) error {
		cancel()
		return nil
	})

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.LogFatal("failed to connect to PostgreSQL", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.LogFatal("failed to ping PostgreSQL", err)
	}
	if err := repositories.Migrate(ctx, pool); err != nil {
		log.LogFatal("failed to run migrations", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.LogFatal("failed to ping Redis", err)
	}

	sp, err := storage.NewProvider()
	if err != nil {
		log.LogFatal("failed to initialize storage provider", err)
	}
	log.Info("storage provider initialized", "provider", sp.Provider())

	go shutdownMgr.Wait(context.Background())

	err = worker.Run(ctx, worker.Deps{
		Pool:      pool,
		RDB:       rdb,
		SP:        sp,
		QueueName: queueName,
		Log:       log,
	})
	if err != nil && err != context.Canceled {
		log.LogFatal("worker stopped with error", err)
	}
	log.Info("worker stopped")
}

func getEnv(key, defaultValue string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	return v
}

func mustEnv(log *logger.Logger, key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		log.Error("missing required environment variable", "key", key)
		os.Exit(1)
	}
	return v
}
