// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache of public JSON responses.
// The public read endpoints store their encoded body here so repeated
// requests skip encoding the content tree. Any admin mutation clears the
// whole cache, since a single document edit can change every response.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached responses.
	responseKeyPrefix = "resp:"

	// DefaultResponseTTL is how long a response stays cached.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache manages public response caching in Valkey. A nil
// *ResponseCache is valid and caches nothing.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey
// client. Returns nil when client is nil.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if client == nil {
		return nil
	}
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get retrieves a cached body. Returns false on miss or error.
func (rc *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, responseKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a body under key with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, responseKeyPrefix+key, body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// Invalidate removes a single cached response.
func (rc *ResponseCache) Invalidate(ctx context.Context, key string) {
	if rc == nil {
		return
	}
	if err := rc.client.Del(ctx, responseKeyPrefix+key).Err(); err != nil {
		slog.Warn("response cache invalidate error", "key", key, "error", err)
	}
	slog.Debug("response cache invalidated", "key", key)
}

// InvalidateAll removes all cached responses by scanning for the prefix.
// Returns how many keys were deleted.
func (rc *ResponseCache) InvalidateAll(ctx context.Context) int {
	if rc == nil {
		return 0
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, responseKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("response cache cleared", "deleted", deleted)
	}
	return deleted
}

// GenerationKey scopes key to a state generation, so a body built from
// older state is never read back once the generation moves on.
func GenerationKey(key string, gen uint64) string {
	return key + "@" + strconv.FormatUint(gen, 10)
}

// ContentKey returns the cache key for the content document.
func ContentKey() string {
	return "content"
}

// ProjectsKey returns the cache key for the project list.
func ProjectsKey() string {
	return "projects"
}

// PropertiesKey returns the cache key for a filtered property list.
// Empty filters are part of the key so each combination caches apart.
func PropertiesKey(propertyType, featured string) string {
	return "properties:" + propertyType + ":" + featured
}

// PropertyKey returns the cache key for one property.
func PropertyKey(id int64) string {
	return "property:" + strconv.FormatInt(id, 10)
}
