package models

import (
	"encoding/json"

	"regional-airports/flightboard/internal/constants"
)

// Direction is the leg type as flagged by the feed (io). It is fixed at ingestion.
type Direction string

const (
	DirectionDeparture Direction = "O"
	DirectionArrival   Direction = "I"
)

// ParseDirection maps the feed's io flag. Unrecognised flags return false.
func ParseDirection(io string) (Direction, bool) {
	switch Direction(io) {
	case DirectionDeparture, DirectionArrival:
		return Direction(io), true
	default:
		return "", false
	}
}

// LifecycleState is derived by reconciliation. The zero value means "not reconciled".
type LifecycleState string

const (
	StateNotDeparted LifecycleState = "NOT_DEPARTED"
	StateInFlight    LifecycleState = "IN_FLIGHT"
	StateCompleted   LifecycleState = "COMPLETED"
	StateUnknown     LifecycleState = "UNKNOWN"
)

// Label is the board text for a state.
func (s LifecycleState) Label() string {
	switch s {
	case StateNotDeparted:
		return constants.LabelNotDeparted
	case StateInFlight:
		return constants.LabelInFlight
	case StateCompleted:
		return constants.LabelCompleted
	case StateUnknown:
		return constants.LabelUnknown
	default:
		return ""
	}
}

// FlightRecord is one leg of one flight as reported by one airport's feed.
// JSON names follow the upstream feed so existing board clients keep working.
type FlightRecord struct {
	FlightNumber    string    `json:"airFln"`
	AirlineName     string    `json:"airlineKorean"`
	AirlineNameEn   string    `json:"airlineEnglish,omitempty"`
	OriginName      string    `json:"boardingKor"`
	DestinationName string    `json:"arrivedKor"`
	ScheduledTime   string    `json:"std"`
	EstimatedTime   string    `json:"etd"`
	Remark          string    `json:"rmkKor"`
	Gate            string    `json:"gate"`
	Direction       Direction `json:"io"`

	// Derived on every reconciliation pass.
	State        LifecycleState `json:"state,omitempty"`
	RemoteRemark string         `json:"flying"`
	TrackingLink string         `json:"flight_link,omitempty"`
}

// IsDeparted reports whether the feed marks this leg as departed.
func (f FlightRecord) IsDeparted() bool {
	return f.Remark == constants.RemarkDeparted
}

// IsArrived reports whether the feed marks this leg as arrived.
func (f FlightRecord) IsArrived() bool {
	return f.Remark == constants.RemarkArrived
}

// StateLabel is the board text for the record's lifecycle state.
func (f FlightRecord) StateLabel() string {
	return f.State.Label()
}

// MarshalJSON adds the flying2 label next to the state.
func (f FlightRecord) MarshalJSON() ([]byte, error) {
	type plain FlightRecord
	return json.Marshal(struct {
		plain
		StateLabel string `json:"flying2,omitempty"`
	}{
		plain:      plain(f),
		StateLabel: f.State.Label(),
	})
}

// Feed is one airport's current snapshot.
type Feed struct {
	Departures []FlightRecord `json:"departures"`
	Arrivals   []FlightRecord `json:"arrivals"`
}

// IsEmpty reports whether the feed carries no records at all.
func (f Feed) IsEmpty() bool {
	return len(f.Departures) == 0 && len(f.Arrivals) == 0
}

// FeedSet holds the feeds of every registered airport keyed by airport code.
type FeedSet map[string]Feed
