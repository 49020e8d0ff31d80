package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"regional-airports/flightboard/internal/metrics"
	"regional-airports/flightboard/internal/models"
)

func feedWith(flightNumber string) models.Feed {
	return models.Feed{
		Departures: []models.FlightRecord{{FlightNumber: flightNumber, Direction: models.DirectionDeparture}},
		Arrivals:   []models.FlightRecord{},
	}
}

func countingLoader(calls *atomic.Int32, feed models.Feed) Loader {
	return func(ctx context.Context) (models.Feed, error) {
		calls.Add(1)
		return feed, nil
	}
}

// Mock SharedStore
type mockSharedStore struct {
	mu   sync.Mutex
	data map[string]models.Feed
	sets int
}

func newMockSharedStore() *mockSharedStore {
	return &mockSharedStore{data: make(map[string]models.Feed)}
}

func (m *mockSharedStore) Get(ctx context.Context, key string) (*models.Feed, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.data[key]
	if !ok {
		return nil, false
	}
	return &f, true
}

func (m *mockSharedStore) Set(ctx context.Context, key string, feed models.Feed, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = feed
	m.sets++
}

func (m *mockSharedStore) Ping(ctx context.Context) error { return nil }
func (m *mockSharedStore) Close() error                   { return nil }

func TestFeedCache_HitAfterLoad(t *testing.T) {
	c, err := NewFeedCache(4)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	var calls atomic.Int32
	load := countingLoader(&calls, feedWith("KE1401"))

	for i := 0; i < 3; i++ {
		feed, err := c.Get(context.Background(), "USN", load)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if feed.Departures[0].FlightNumber != "KE1401" {
			t.Errorf("Unexpected feed: %+v", feed)
		}
	}

	if calls.Load() != 1 {
		t.Errorf("Expected 1 upstream load, got %d", calls.Load())
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Loads != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestFeedCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewFeedCache(2)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	ctx := context.Background()

	var gmp, cju, pus atomic.Int32
	c.Get(ctx, "GMP", countingLoader(&gmp, feedWith("A")))
	c.Get(ctx, "CJU", countingLoader(&cju, feedWith("B")))
	// touch GMP so CJU becomes least recently used
	c.Get(ctx, "GMP", countingLoader(&gmp, feedWith("A")))
	c.Get(ctx, "PUS", countingLoader(&pus, feedWith("C")))

	if c.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", c.Len())
	}

	c.Get(ctx, "GMP", countingLoader(&gmp, feedWith("A")))
	c.Get(ctx, "CJU", countingLoader(&cju, feedWith("B")))

	if gmp.Load() != 1 {
		t.Errorf("Expected GMP to stay cached, loaded %d times", gmp.Load())
	}
	if cju.Load() != 2 {
		t.Errorf("Expected CJU to be evicted and reloaded, loaded %d times", cju.Load())
	}
	if c.Stats().Evictions < 1 {
		t.Errorf("Expected at least one eviction, got %d", c.Stats().Evictions)
	}
}

func TestFeedCache_TTLExpiry(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	c, err := NewFeedCache(4, WithTTL(time.Minute), withClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	var calls atomic.Int32
	load := countingLoader(&calls, feedWith("KE1401"))

	c.Get(context.Background(), "USN", load)
	now = now.Add(30 * time.Second)
	c.Get(context.Background(), "USN", load)
	if calls.Load() != 1 {
		t.Fatalf("Expected cached value within TTL, got %d loads", calls.Load())
	}

	now = now.Add(2 * time.Minute)
	c.Get(context.Background(), "USN", load)
	if calls.Load() != 2 {
		t.Errorf("Expected reload after TTL, got %d loads", calls.Load())
	}
}

func TestFeedCache_ErrorsAreNotCached(t *testing.T) {
	c, err := NewFeedCache(4)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	var calls atomic.Int32
	failing := func(ctx context.Context) (models.Feed, error) {
		calls.Add(1)
		return models.Feed{}, errors.New("upstream down")
	}

	if _, err := c.Get(context.Background(), "USN", failing); err == nil {
		t.Fatal("Expected loader error")
	}
	if c.Len() != 0 {
		t.Errorf("Expected no cached entry after error, got %d", c.Len())
	}

	if _, err := c.Get(context.Background(), "USN", countingLoader(&calls, feedWith("KE1401"))); err != nil {
		t.Fatalf("Expected no error on retry, got %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Expected retry to reach the loader, got %d calls", calls.Load())
	}
}

func TestFeedCache_CoalescesConcurrentMisses(t *testing.T) {
	c, err := NewFeedCache(4)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	var calls atomic.Int32
	release := make(chan struct{})
	slow := func(ctx context.Context) (models.Feed, error) {
		calls.Add(1)
		<-release
		return feedWith("KE1401"), nil
	}

	const callers = 10
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background(), "USN", slow)
			errs <- err
		}()
	}

	// give the callers time to pile up behind the first load
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("Expected a single upstream load, got %d", calls.Load())
	}
}

func TestFeedCache_WaiterContextCancelled(t *testing.T) {
	c, err := NewFeedCache(4)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	release := make(chan struct{})
	defer close(release)
	slow := func(ctx context.Context) (models.Feed, error) {
		<-release
		return feedWith("KE1401"), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := c.Get(ctx, "USN", slow); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestFeedCache_SharedStore(t *testing.T) {
	shared := newMockSharedStore()
	shared.data["FEED_GMP"] = feedWith("OZ8901")

	c, err := NewFeedCache(4, WithSharedStore(shared, time.Minute))
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	var calls atomic.Int32
	feed, err := c.Get(context.Background(), "GMP", countingLoader(&calls, feedWith("KE1401")))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("Expected shared store hit to skip the loader, got %d calls", calls.Load())
	}
	if feed.Departures[0].FlightNumber != "OZ8901" {
		t.Errorf("Expected feed from shared store, got %+v", feed)
	}

	if _, err := c.Get(context.Background(), "USN", countingLoader(&calls, feedWith("KE1401"))); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := shared.data["FEED_USN"]; !ok {
		t.Error("Expected loaded feed to be written to the shared store")
	}
	if !c.Stats().Shared {
		t.Error("Expected stats to report a shared store")
	}
}

func TestFeedCache_PurgeAndMetrics(t *testing.T) {
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	c, err := NewFeedCache(4, WithMetrics(reg))
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}

	var calls atomic.Int32
	load := countingLoader(&calls, feedWith("KE1401"))
	c.Get(context.Background(), "USN", load)
	c.Purge()
	c.Get(context.Background(), "USN", load)

	if calls.Load() != 2 {
		t.Errorf("Expected reload after purge, got %d loads", calls.Load())
	}
}

func TestNewFeedCache_InvalidCapacity(t *testing.T) {
	if _, err := NewFeedCache(0); err == nil {
		t.Error("Expected error for zero capacity")
	}
}
