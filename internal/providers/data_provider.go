package providers

import (
	"context"
	"fmt"

	"regional-airports/flightboard/internal/models"
)

// FeedFetcher defines the contract for an upstream flight status source
type FeedFetcher interface {
	// FetchFeed fetches one airport's departures and arrivals.
	// Returns the feed, the upstream HTTP status (0 when no response was received) and an error.
	FetchFeed(ctx context.Context, airportCode string) (*models.Feed, int, error)

	// GetProviderType returns the provider type identifier
	GetProviderType() string
}

// ProviderError is returned for every upstream failure
type ProviderError struct {
	Code    string
	Message string
	Details string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
