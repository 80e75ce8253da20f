// Package cache keeps generated artifact text in redis so repeated artifact
// reads skip regeneration. Entries are dropped whenever the template
// mutates; the next read regenerates and refills.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const artifactTTL = 24 * time.Hour

type ArtifactCache struct {
	rdb *redis.Client
}

func NewArtifactCache(rdb *redis.Client) *ArtifactCache {
	return &ArtifactCache{rdb: rdb}
}

// Get returns the cached artifact text and whether it was present. Cache
// errors degrade to a miss.
func (c *ArtifactCache) Get(ctx context.Context, templateID string) (string, bool) {
	val, err := c.rdb.Get(ctx, key(templateID)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Set stores the artifact text.
func (c *ArtifactCache) Set(ctx context.Context, templateID, artifact string) error {
	return c.rdb.Set(ctx, key(templateID), artifact, artifactTTL).Err()
}

// Invalidate drops the entry; a missing key is not an error.
func (c *ArtifactCache) Invalidate(ctx context.Context, templateID string) error {
	return c.rdb.Del(ctx, key(templateID)).Err()
}

func key(templateID string) string {
	return "ograf:artifact:" + templateID
}
