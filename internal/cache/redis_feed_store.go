package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"regional-airports/flightboard/internal/logging"
	"regional-airports/flightboard/internal/models"
)

// RedisFeedStore implements SharedStore using Redis
type RedisFeedStore struct {
	client redis.UniversalClient
}

// Ensure RedisFeedStore implements SharedStore
var _ SharedStore = (*RedisFeedStore)(nil)

// NewRedisFeedStore wraps an existing Redis client
func NewRedisFeedStore(client redis.UniversalClient) *RedisFeedStore {
	return &RedisFeedStore{client: client}
}

// Get retrieves a feed from Redis by key
func (r *RedisFeedStore) Get(ctx context.Context, key string) (*models.Feed, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		// Key not found
		return nil, false
	}
	if err != nil {
		logging.Warn("Redis feed store: get failed", "key", key, "error", err.Error())
		return nil, false
	}

	var feed models.Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		logging.Warn("Redis feed store: unmarshal failed", "key", key, "error", err.Error())
		return nil, false
	}

	return &feed, true
}

// Set stores a feed in Redis with the given key and duration
func (r *RedisFeedStore) Set(ctx context.Context, key string, feed models.Feed, duration time.Duration) {
	data, err := json.Marshal(feed)
	if err != nil {
		logging.Warn("Redis feed store: marshal failed", "key", key, "error", err.Error())
		return
	}

	if err := r.client.Set(ctx, key, data, duration).Err(); err != nil {
		logging.Warn("Redis feed store: set failed", "key", key, "error", err.Error())
	}
}

// Ping checks the Redis connection
func (r *RedisFeedStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisFeedStore) Close() error {
	return r.client.Close()
}
