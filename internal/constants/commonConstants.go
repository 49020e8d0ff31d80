package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixFeed CachePrefix = "FEED_"
)

// Remarks as reported by the upstream feed (rmkKor).
const (
	RemarkDeparted = "출발"
	RemarkArrived  = "도착"
)

// Sentinels for optional feed fields.
const (
	SentinelTime = "-"
	SentinelGate = "-"
)

// FlightTrackerURL is the external tracking page prefix; the ICAO callsign is appended.
const FlightTrackerURL = "https://www.flightradar24.com/"

// DisplayTimeLayout is the board's "last updated" format.
const DisplayTimeLayout = "2006-01-02 15:04:05"
