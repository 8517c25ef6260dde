package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const versionKey = "cache:ver"

// Cache is a best-effort JSON response cache over redis. Keys live under a
// versioned namespace; bumping the version invalidates everything at once, so
// writers never need to enumerate keys. All failures degrade to cache misses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetJSON loads key into dest, reporting whether it was a hit.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	payload, err := c.client.Get(ctx, c.versionedKey(ctx, key)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(payload, dest) == nil
}

// SetJSON stores v under key with the cache TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.versionedKey(ctx, key), payload, c.ttl).Err(); err != nil {
		log.Printf("cache set failed for %s: %v", key, err)
	}
}

// Invalidate bumps the namespace version, orphaning every cached entry.
// Orphans expire via TTL.
func (c *Cache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}
}

func (c *Cache) versionedKey(ctx context.Context, key string) string {
	ver, err := c.client.Get(ctx, versionKey).Result()
	if err != nil {
		ver = "0"
	}
	return "cache:v" + ver + ":" + key
}
