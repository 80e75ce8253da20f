package worker

import (
	"context"
	"errors"
	"time"

	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/logger"
	"github.com/eyevinn-osaas/ograf-editor/internal/worker/queue"
)

// idleTimeout reports whether a pop error is just the bounded wait expiring
// with nothing queued. That happens every 30s on an idle queue and is not
// worth logging or backing off from.
func idleTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// Run consumes publish jobs from the queue until ctx is canceled.
func Run(ctx context.Context, d Deps) error {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}
	log = log.WithComponent("worker")

	q := queue.NewRedisQueue(d.RDB, d.QueueName)
	p := NewProcessor(d)

	for {
		select {
		case <-ctx.Done():
			log.Info("worker context canceled, stopping")
			return ctx.Err()
		default:
		}

		// Bounded pop so shutdown is not stuck behind an idle BRPOP.
		popCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		payload, err := q.Pop(popCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				log.Info("worker stopping due to context cancellation")
				return ctx.Err()
			}
			if idleTimeout(err) {
				continue
			}

			log.Warn("queue pop error, retrying",
				"error", err.Error(),
			)
			time.Sleep(1 * time.Second)
			continue
		}

		if payload == "" {
			continue
		}

		jobLog := log.With("publish_id", payload)
		jobLog.Info("processing publish job")
		startTime := time.Now()

		if err := p.ProcessJob(ctx, payload); err != nil {
			jobLog.Error("publish failed",
				"error", err.Error(),
				"duration_ms", time.Since(startTime).Milliseconds(),
			)
		} else {
			jobLog.Info("publish completed",
				"duration_ms", time.Since(startTime).Milliseconds(),
			)
		}
	}
}
