// Package cache implements the summary cache on redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budgetwise/backend/internal/application/adapter"
)

// redisSummaryCache implements adapter.SummaryCache on redis.
//
// Entries are namespaced per user under a version counter; invalidation
// bumps the counter instead of scanning for keys, so it is O(1) and old
// entries simply age out through their TTL.
type redisSummaryCache struct {
	client *redis.Client
}

// NewRedisSummaryCache creates a new redis-backed summary cache.
func NewRedisSummaryCache(client *redis.Client) adapter.SummaryCache {
	return &redisSummaryCache{client: client}
}

// Get loads a cached value into dest.
func (c *redisSummaryCache) Get(ctx context.Context, userID uuid.UUID, key string, dest any) (bool, error) {
	fullKey, err := c.versionedKey(ctx, userID, key)
	if err != nil {
		return false, err
	}

	payload, err := c.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return true, nil
}

// Set stores a value under the user's namespace with the given TTL.
func (c *redisSummaryCache) Set(ctx context.Context, userID uuid.UUID, key string, value any, ttl time.Duration) error {
	fullKey, err := c.versionedKey(ctx, userID, key)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode summary for cache: %w", err)
	}
	return c.client.Set(ctx, fullKey, payload, ttl).Err()
}

// Invalidate drops every cached summary of the user by bumping the version.
func (c *redisSummaryCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.client.Incr(ctx, versionKey(userID)).Err()
}

func (c *redisSummaryCache) versionedKey(ctx context.Context, userID uuid.UUID, key string) (string, error) {
	version, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("summary:%s:v%d:%s", userID, version, key), nil
}

func versionKey(userID uuid.UUID) string {
	return fmt.Sprintf("summary:%s:version", userID)
}

// noopSummaryCache is used when no redis address is configured.
type noopSummaryCache struct{}

// NewNoopSummaryCache creates a cache that never hits.
func NewNoopSummaryCache() adapter.SummaryCache {
	return noopSummaryCache{}
}

func (noopSummaryCache) Get(context.Context, uuid.UUID, string, any) (bool, error) {
	return false, nil
}

func (noopSummaryCache) Set(context.Context, uuid.UUID, string, any, time.Duration) error {
	return nil
}

func (noopSummaryCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}
