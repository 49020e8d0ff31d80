package workers

import (
	"context"
	"time"

	"regional-airports/flightboard/internal/logging"
	"regional-airports/flightboard/internal/models"
)

// FeedSource is the part of the flight board service the refresher drives.
type FeedSource interface {
	Refresh()
	AllFeeds(ctx context.Context) models.FeedSet
}

// FeedRefresher periodically drops cached feeds and warms every airport again,
// so boards do not serve the first snapshot for the whole process lifetime.
type FeedRefresher struct {
	source   FeedSource
	interval time.Duration
}

func NewFeedRefresher(source FeedSource, interval time.Duration) *FeedRefresher {
	return &FeedRefresher{source: source, interval: interval}
}

// Start blocks until ctx is done. The first warm-up runs immediately.
func (f *FeedRefresher) Start(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	f.warm(ctx)

	for {
		select {
		case <-ctx.Done():
			logging.Info("Feed refresher stopped")
			return
		case <-ticker.C:
			f.source.Refresh()
			f.warm(ctx)
		}
	}
}

func (f *FeedRefresher) warm(ctx context.Context) {
	start := time.Now()
	feeds := f.source.AllFeeds(ctx)

	empty := 0
	for _, feed := range feeds {
		if feed.IsEmpty() {
			empty++
		}
	}
	logging.Info("Feed cache warmed",
		"airports", len(feeds),
		"empty_feeds", empty,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
