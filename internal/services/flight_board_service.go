package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"regional-airports/flightboard/internal/cache"
	"regional-airports/flightboard/internal/constants"
	"regional-airports/flightboard/internal/logging"
	"regional-airports/flightboard/internal/metrics"
	"regional-airports/flightboard/internal/models"
	"regional-airports/flightboard/internal/models/dtos"
	"regional-airports/flightboard/internal/providers"
	"regional-airports/flightboard/internal/registry"
)

// ErrNoFlightData is returned when the selected airport's feed came back empty.
var ErrNoFlightData = errors.New("no flight data for airport")

// FlightBoardService fetches airport feeds, reconciles them and shapes them for presentation
type FlightBoardService struct {
	Fetcher         providers.FeedFetcher
	Cache           *cache.FeedCache
	Metrics         *metrics.MetricsRegistry
	UpstreamTimeout time.Duration
	Concurrency     int

	now func() time.Time
}

// NewFlightBoardService wires the service. metricsReg may be nil.
func NewFlightBoardService(
	fetcher providers.FeedFetcher,
	feedCache *cache.FeedCache,
	metricsReg *metrics.MetricsRegistry,
	upstreamTimeout time.Duration,
	concurrency int,
) *FlightBoardService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &FlightBoardService{
		Fetcher:         fetcher,
		Cache:           feedCache,
		Metrics:         metricsReg,
		UpstreamTimeout: upstreamTimeout,
		Concurrency:     concurrency,
		now:             time.Now,
	}
}

// Feed returns one airport's feed. Upstream failures are logged and degrade to an
// empty feed so one unreachable airport never aborts the others.
func (svc *FlightBoardService) Feed(ctx context.Context, airportCode string) models.Feed {
	var (
		feed models.Feed
		err  error
	)
	if registry.IsRegistered(airportCode) {
		feed, err = svc.Cache.Get(ctx, airportCode, func(loadCtx context.Context) (models.Feed, error) {
			return svc.fetch(loadCtx, airportCode)
		})
	} else {
		// Unregistered codes are fetched uncached so they cannot evict registered airports.
		feed, err = svc.fetch(ctx, airportCode)
	}
	if err != nil {
		code := constants.ErrCodeNetworkError
		var perr *providers.ProviderError
		if errors.As(err, &perr) {
			code = perr.Code
		} else if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			code = constants.ErrCodeTimeout
		}

		logging.Error("Flight status fetch failed, using empty feed",
			"airport_code", airportCode,
			"error_code", code,
			"error", err.Error(),
		)
		if svc.Metrics != nil {
			svc.Metrics.UpstreamFailuresTotal.WithLabelValues(airportLabel(airportCode), code).Inc()
		}
		return emptyFeed()
	}
	return feed
}

// fetch performs one bounded upstream call
func (svc *FlightBoardService) fetch(ctx context.Context, airportCode string) (models.Feed, error) {
	if svc.UpstreamTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.UpstreamTimeout)
		defer cancel()
	}

	start := time.Now()
	feed, status, err := svc.Fetcher.FetchFeed(ctx, airportCode)
	elapsed := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if svc.Metrics != nil {
		label := airportLabel(airportCode)
		svc.Metrics.UpstreamRequestsTotal.WithLabelValues(label, outcome).Inc()
		svc.Metrics.UpstreamRequestDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	}

	if err != nil {
		var perr *providers.ProviderError
		details := ""
		if errors.As(err, &perr) {
			details = perr.Details
		}
		logging.Warn("Flight status API request failed",
			"airport_code", airportCode,
			"provider", svc.Fetcher.GetProviderType(),
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"details", details,
		)
		return models.Feed{}, err
	}

	logging.Debug("Fetched flight status",
		"airport_code", airportCode,
		"provider", svc.Fetcher.GetProviderType(),
		"departures", len(feed.Departures),
		"arrivals", len(feed.Arrivals),
		"duration_ms", elapsed.Milliseconds(),
	)
	return *feed, nil
}

// AllFeeds fetches every registered airport concurrently
func (svc *FlightBoardService) AllFeeds(ctx context.Context) models.FeedSet {
	codes := registry.AirportCodes()
	results := make([]models.Feed, len(codes))

	var g errgroup.Group
	g.SetLimit(svc.Concurrency)
	for i, code := range codes {
		g.Go(func() error {
			results[i] = svc.Feed(ctx, code)
			return nil
		})
	}
	// Feed never fails; per-airport errors already degraded to empty feeds.
	_ = g.Wait()

	feeds := make(models.FeedSet, len(codes))
	for i, code := range codes {
		feeds[code] = results[i]
	}
	return feeds
}

// reconciled fetches the selected airport plus every registered airport and reconciles
func (svc *FlightBoardService) reconciled(ctx context.Context, departures, arrivals []models.FlightRecord) ([]models.FlightRecord, []models.FlightRecord) {
	start := time.Now()
	feeds := svc.AllFeeds(ctx)
	deps, arrs := Reconcile(departures, arrivals, feeds)

	if svc.Metrics != nil {
		svc.Metrics.ReconcileDuration.Observe(time.Since(start).Seconds())
		for _, rec := range deps {
			svc.Metrics.FlightsReconciledTotal.WithLabelValues(string(rec.State)).Inc()
		}
		for _, rec := range arrs {
			svc.Metrics.FlightsReconciledTotal.WithLabelValues(string(rec.State)).Inc()
		}
	}
	return deps, arrs
}

// Board builds the page view for an airport: reconcile, then hide completed flights
// unless ShowAll, then apply the airline filter.
func (svc *FlightBoardService) Board(ctx context.Context, airportCode string, q dtos.BoardQuery) *dtos.Board {
	selected := svc.Feed(ctx, airportCode)
	deps, arrs := svc.reconciled(ctx, selected.Departures, selected.Arrivals)

	if !q.ShowAll {
		deps = excludeCompleted(deps)
		arrs = excludeCompleted(arrs)
	}
	deps = FilterByAirline(deps, q.Airline)
	arrs = FilterByAirline(arrs, q.Airline)

	name, _ := registry.AirportName(airportCode)

	return &dtos.Board{
		AirportCode:      airportCode,
		AirportName:      name,
		AirportImagePath: "assets/img/airports/" + airportCode + ".jpg",
		CurrentTime:      svc.now().Format(constants.DisplayTimeLayout),
		ShowAll:          q.ShowAll,
		Departures:       deps,
		Arrivals:         arrs,
		Airports:         registry.Airports(),
		AirlineLogos:     registry.AirlineLogos(),
	}
}

// FetchInfo returns reconciled departures and arrivals for the query endpoint.
// Fails with ErrNoFlightData when either list of the selected airport is empty.
// The airline filter runs before reconciliation; an unknown airline gives empty lists.
func (svc *FlightBoardService) FetchInfo(ctx context.Context, airportCode, airline string) (*dtos.FlightInfoResponse, error) {
	selected := svc.Feed(ctx, airportCode)
	if len(selected.Departures) == 0 || len(selected.Arrivals) == 0 {
		return nil, ErrNoFlightData
	}

	deps := FilterByAirline(selected.Departures, airline)
	arrs := FilterByAirline(selected.Arrivals, airline)
	deps, arrs = svc.reconciled(ctx, deps, arrs)

	return &dtos.FlightInfoResponse{
		Departures: deps,
		Arrivals:   arrs,
	}, nil
}

// Airlines lists the distinct airlines departing from an airport, sorted by name
func (svc *FlightBoardService) Airlines(ctx context.Context, airportCode string) ([]dtos.AirlineSummary, error) {
	selected := svc.Feed(ctx, airportCode)
	if len(selected.Departures) == 0 {
		return nil, ErrNoFlightData
	}

	seen := make(map[dtos.AirlineSummary]struct{})
	airlines := make([]dtos.AirlineSummary, 0)
	for _, dep := range selected.Departures {
		prefix, _ := registry.CarrierPrefix(dep.FlightNumber)
		a := dtos.AirlineSummary{
			AirlineCode: registry.IATAToICAO(prefix),
			AirlineName: dep.AirlineName,
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		airlines = append(airlines, a)
	}

	sort.Slice(airlines, func(i, j int) bool {
		if airlines[i].AirlineName != airlines[j].AirlineName {
			return airlines[i].AirlineName < airlines[j].AirlineName
		}
		return airlines[i].AirlineCode < airlines[j].AirlineCode
	})
	return airlines, nil
}

// Refresh drops every cached feed
func (svc *FlightBoardService) Refresh() {
	svc.Cache.Purge()
}

// FilterByAirline keeps records whose airline display name equals airline.
// An empty name or "all" disables the filter.
func FilterByAirline(records []models.FlightRecord, airline string) []models.FlightRecord {
	if airline == "" || airline == "all" {
		return records
	}
	out := make([]models.FlightRecord, 0, len(records))
	for _, rec := range records {
		if rec.AirlineName == airline {
			out = append(out, rec)
		}
	}
	return out
}

// airportLabel keeps metric label cardinality bounded to the registered airports
func airportLabel(code string) string {
	if registry.IsRegistered(code) {
		return code
	}
	return "other"
}

func excludeCompleted(records []models.FlightRecord) []models.FlightRecord {
	out := make([]models.FlightRecord, 0, len(records))
	for _, rec := range records {
		if rec.State != models.StateCompleted {
			out = append(out, rec)
		}
	}
	return out
}

func emptyFeed() models.Feed {
	return models.Feed{
		Departures: []models.FlightRecord{},
		Arrivals:   []models.FlightRecord{},
	}
}
