package workers

import (
	"context"
	"time"

	"regional-airports/flightboard/internal/logging"
)

type WorkersContainer struct {
	FeedRefresher *FeedRefresher
}

// InitWorkers starts the background workers. A zero refresh interval disables the refresher.
func InitWorkers(ctx context.Context, source FeedSource, refreshInterval time.Duration) *WorkersContainer {
	container := &WorkersContainer{}

	if refreshInterval > 0 {
		container.FeedRefresher = NewFeedRefresher(source, refreshInterval)
		go container.FeedRefresher.Start(ctx)
		logging.Info("Feed refresher started", "interval", refreshInterval.String())
	}

	return container
}
