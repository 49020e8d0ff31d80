package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"regional-airports/flightboard/internal/models"
)

// Mock FeedSource
type mockFeedSource struct {
	refreshes atomic.Int32
	warms     atomic.Int32
}

func (m *mockFeedSource) Refresh() { m.refreshes.Add(1) }

func (m *mockFeedSource) AllFeeds(ctx context.Context) models.FeedSet {
	m.warms.Add(1)
	return models.FeedSet{"USN": {}}
}

func TestFeedRefresher_WarmsAndRefreshes(t *testing.T) {
	src := &mockFeedSource{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		NewFeedRefresher(src, 10*time.Millisecond).Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for src.refreshes.Load() < 2 {
		select {
		case <-deadline:
			cancel()
			t.Fatalf("Expected at least 2 refreshes, got %d", src.refreshes.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expected refresher to stop after cancel")
	}

	if src.warms.Load() < src.refreshes.Load()+1 {
		t.Errorf("Expected an initial warm-up plus one per refresh, got %d warms for %d refreshes",
			src.warms.Load(), src.refreshes.Load())
	}
}

func TestInitWorkers_DisabledByDefault(t *testing.T) {
	src := &mockFeedSource{}
	container := InitWorkers(context.Background(), src, 0)

	if container.FeedRefresher != nil {
		t.Error("Expected no refresher for a zero interval")
	}
	if src.warms.Load() != 0 {
		t.Error("Expected no warm-up when disabled")
	}
}
