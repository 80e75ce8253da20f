package worker

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/logger"
	"github.com/eyevinn-osaas/ograf-editor/internal/storage"
)

// Deps wires the publish worker.
type Deps struct {
	Pool      *pgxpool.Pool
	RDB       *redis.Client
	SP        storage.Provider
	QueueName string
	Log       *logger.Logger
}
