// Package cache provides a tiny Redis client wrapper for listing responses
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ccbangkit/scan-api/internal/store"
)

// DefaultTTL bounds staleness for listings written outside this process.
const DefaultTTL = 30 * time.Second

// Cache wraps a Redis client for document listing storage. A nil *Cache is
// valid and behaves as a permanent miss, so callers need no cache guard.
type Cache struct {
	client *redis.Client
}

// New creates a new Cache instance connected to the specified Redis address
// If addr is empty, defaults to localhost:6379
func New(addr string) (*Cache, error) {
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password by default
		DB:       0,  // Default DB
	})

	// Test connection
	ctx := context.Background()
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &Cache{client: client}, nil
}

// GetListing returns the cached documents under key, or nil on a miss.
func (c *Cache) GetListing(ctx context.Context, key string) ([]store.Document, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // Key does not exist
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing %s: %w", key, err)
	}

	var docs []store.Document
	if err := json.Unmarshal([]byte(data), &docs); err != nil {
		return nil, fmt.Errorf("failed to decode cached listing %s: %w", key, err)
	}
	return docs, nil
}

// SetListing stores the documents under key with the specified TTL.
func (c *Cache) SetListing(ctx context.Context, key string, docs []store.Document, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("failed to encode listing %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set listing %s: %w", key, err)
	}
	return nil
}

// Invalidate drops the cached listing under key.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return nil
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate listing %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}
