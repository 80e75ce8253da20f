// Package queue is the redis list the API pushes publish jobs onto and the
// worker pops them from.
package queue

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// DefaultQueueName is the redis list publish jobs travel on unless
// JOB_QUEUE_NAME overrides it.
const DefaultQueueName = "ograf:publish"

type RedisQueue struct {
	rdb       *redis.Client
	queueName string
}

func NewRedisQueue(rdb *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{rdb: rdb, queueName: queueName}
}

// Push enqueues a job payload (a publish id).
func (q *RedisQueue) Push(ctx context.Context, payload string) error {
	return q.rdb.LPush(ctx, q.queueName, payload).Err()
}

// Pop blocks until a job is available (BRPOP) or ctx expires.
func (q *RedisQueue) Pop(ctx context.Context) (string, error) {
	res, err := q.rdb.BRPop(ctx, 0, q.queueName).Result()
	if err != nil {
		return "", err
	}
	if len(res) < 2 {
		return "", nil
	}
	return res[1], nil
}
