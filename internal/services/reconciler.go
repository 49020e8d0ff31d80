package services

import (
	"regional-airports/flightboard/internal/constants"
	"regional-airports/flightboard/internal/models"
	"regional-airports/flightboard/internal/registry"
)

// Reconcile cross-matches the selected airport's departures and arrivals against every
// airport's feed and returns annotated copies. Inputs are never modified, and derived
// fields are fully recomputed, so reconciling already-annotated records gives the same result.
//
// When a feed holds the same flight number twice, the first record in feed order wins.
func Reconcile(departures, arrivals []models.FlightRecord, feeds models.FeedSet) ([]models.FlightRecord, []models.FlightRecord) {
	outDeps := make([]models.FlightRecord, len(departures))
	for i, dep := range departures {
		outDeps[i] = ReconcileDeparture(dep, feeds)
	}

	outArrs := make([]models.FlightRecord, len(arrivals))
	for i, arr := range arrivals {
		outArrs[i] = ReconcileArrival(arr, feeds)
	}

	return outDeps, outArrs
}

// ReconcileArrival derives the state of an arrival from its origin's departure feed.
// The arrival's own remark takes precedence when it is empty or reports arrival.
func ReconcileArrival(arrival models.FlightRecord, feeds models.FeedSet) models.FlightRecord {
	out := arrival
	out.RemoteRemark = ""
	out.TrackingLink = ""

	match, found := counterpart(arrival.FlightNumber, arrival.OriginName, feeds, models.DirectionDeparture)
	if found {
		out.RemoteRemark = match.Remark
	}
	originDeparted := found && match.IsDeparted()

	switch {
	case originDeparted:
		out.State = models.StateInFlight
	case found:
		out.State = models.StateNotDeparted
	default:
		out.State = models.StateUnknown
	}

	switch {
	case arrival.Remark == "" && originDeparted:
		out.State = models.StateInFlight
	case arrival.Remark == "":
		out.State = models.StateNotDeparted
	case arrival.IsArrived():
		out.State = models.StateCompleted
	}

	if out.State == models.StateInFlight {
		out.TrackingLink = TrackingLink(arrival.FlightNumber)
	}
	return out
}

// ReconcileDeparture derives the state of a departure from its own remark and the
// destination's arrival feed.
func ReconcileDeparture(departure models.FlightRecord, feeds models.FeedSet) models.FlightRecord {
	out := departure
	out.RemoteRemark = ""
	out.TrackingLink = ""

	if match, found := counterpart(departure.FlightNumber, departure.DestinationName, feeds, models.DirectionArrival); found {
		out.RemoteRemark = match.Remark
	}

	switch {
	case departure.IsDeparted() && out.RemoteRemark == constants.RemarkArrived:
		out.State = models.StateCompleted
	case departure.IsDeparted():
		out.State = models.StateInFlight
		out.TrackingLink = TrackingLink(departure.FlightNumber)
	default:
		out.State = models.StateNotDeparted
	}
	return out
}

// TrackingLink builds the external tracking URL, converting the carrier prefix to ICAO.
func TrackingLink(flightNumber string) string {
	prefix, suffix := registry.CarrierPrefix(flightNumber)
	return constants.FlightTrackerURL + registry.IATAToICAO(prefix) + suffix
}

// counterpart finds the first record with the same flight number in the feed of the
// airport named airportName. Unresolvable names, missing feeds and empty flight
// numbers are "no match".
func counterpart(flightNumber, airportName string, feeds models.FeedSet, dir models.Direction) (models.FlightRecord, bool) {
	if flightNumber == "" {
		return models.FlightRecord{}, false
	}

	code, ok := registry.AirportCodeFromName(airportName)
	if !ok {
		return models.FlightRecord{}, false
	}

	feed, ok := feeds[code]
	if !ok {
		return models.FlightRecord{}, false
	}

	candidates := feed.Departures
	if dir == models.DirectionArrival {
		candidates = feed.Arrivals
	}
	for _, rec := range candidates {
		if rec.FlightNumber == flightNumber {
			return rec, true
		}
	}
	return models.FlightRecord{}, false
}
