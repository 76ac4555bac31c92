package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys and TTLs for public content reads.
const (
	contentKeyPrefix = "content:"

	// DefaultContentTTL is the TTL for cached singleton content.
	// Public pages tolerate slightly stale profile data.
	DefaultContentTTL = 5 * time.Minute
)

// ErrCacheMiss indicates the requested entry is not cached.
var ErrCacheMiss = errors.New("cache miss")

// GetContent retrieves a cached content document by entity name
// (e.g. "personal_info") and unmarshals it into out.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetContent(ctx context.Context, entity string, out any) error {
	data, err := c.client.Get(ctx, contentKeyPrefix+entity).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		// Corrupted entry - treat as miss
		return ErrCacheMiss
	}
	return nil
}

// SetContent caches a content document under the entity name.
func (c *Cache) SetContent(ctx context.Context, entity string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	if err := c.client.Set(ctx, contentKeyPrefix+entity, data, DefaultContentTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache content: %w", err)
	}
	return nil
}

// InvalidateContent removes a cached content document.
// Called after every successful upsert so readers see the new row.
func (c *Cache) InvalidateContent(ctx context.Context, entity string) error {
	if err := c.client.Del(ctx, contentKeyPrefix+entity).Err(); err != nil {
		return fmt.Errorf("failed to invalidate content cache: %w", err)
	}
	return nil
}
