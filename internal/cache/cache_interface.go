package cache

import (
	"context"
	"time"

	"regional-airports/flightboard/internal/models"
)

// SharedStore is a second cache layer shared between server instances.
// Implementations log their own failures and report them as misses.
type SharedStore interface {
	// Get retrieves a feed by key. Returns the feed and true if found.
	Get(ctx context.Context, key string) (*models.Feed, bool)

	// Set stores a feed with the given key and duration
	Set(ctx context.Context, key string, feed models.Feed, duration time.Duration)

	// Ping checks connectivity for the health endpoint
	Ping(ctx context.Context) error

	// Close closes any underlying connections
	Close() error
}
