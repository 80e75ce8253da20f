package handlers

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/eyevinn-osaas/ograf-editor/internal/cache"
	"github.com/eyevinn-osaas/ograf-editor/internal/models"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/logger"
	"github.com/eyevinn-osaas/ograf-editor/internal/repositories"
	"github.com/eyevinn-osaas/ograf-editor/internal/sandbox"
	"github.com/eyevinn-osaas/ograf-editor/internal/storage"
	"github.com/eyevinn-osaas/ograf-editor/internal/worker/queue"
)

// templateStore is the slice of the template repository the handlers use.
type templateStore interface {
	Create(ctx context.Context, snap models.Snapshot) error
	Save(ctx context.Context, snap models.Snapshot) error
	Load(ctx context.Context, id string) (models.Snapshot, error)
	List(ctx context.Context) ([]repositories.TemplateSummary, error)
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type publishStore interface {
	Enqueue(ctx context.Context, templateID string) (int64, error)
	Latest(ctx context.Context, templateID string) (repositories.PublishRecord, error)
}

type artifactCache interface {
	Get(ctx context.Context, templateID string) (string, bool)
	Set(ctx context.Context, templateID, artifact string) error
	Invalidate(ctx context.Context, templateID string) error
}

type jobQueue interface {
	Push(ctx context.Context, payload string) error
}

// playoutHost drives the in-process graphic sandbox.
type playoutHost interface {
	Load(snap models.Snapshot) <-chan struct{}
	Play(templateID string, skipAnimation bool) (<-chan struct{}, error)
	Stop(templateID string, skipAnimation bool) (<-chan struct{}, error)
	Update(templateID string, data map[string]any) (<-chan struct{}, error)
	CustomAction(templateID, name string, data map[string]any) (<-chan struct{}, error)
	Teardown(templateID string)
}

type Deps struct {
	Pool      *pgxpool.Pool
	RDB       *redis.Client
	SP        storage.Provider
	Host      *sandbox.Host
	QueueName string
	Log       *logger.Logger
}

type Handler struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	sp   storage.Provider
	log  *logger.Logger

	templates templateStore
	publishes publishStore
	artifacts artifactCache
	queue     jobQueue
	host      playoutHost
}

func New(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	queueName := d.QueueName
	if queueName == "" {
		queueName = queue.DefaultQueueName
	}

	return &Handler{
		pool:      d.Pool,
		rdb:       d.RDB,
		sp:        d.SP,
		log:       log.WithComponent("httpapi"),
		templates: repositories.NewTemplateRepository(d.Pool),
		publishes: repositories.NewPublishRepository(d.Pool),
		artifacts: cache.NewArtifactCache(d.RDB),
		queue:     queue.NewRedisQueue(d.RDB, queueName),
		host:      d.Host,
	}
}
