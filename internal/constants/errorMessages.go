package constants

const (
	MsgFailedToFetchAirlines   = "Failed to fetch airlines"
	MsgFailedToFetchFlightInfo = "Failed to fetch flight info"
	MsgFailedToRender          = "Failed to render flight board"
	MsgUnauthorized            = "Unauthorized"
	MsgTooManyRequests         = "Too many requests"
)

// Lifecycle labels shown on the board.
const (
	LabelNotDeparted = "출발 전"
	LabelInFlight    = "비행 중"
	LabelCompleted   = "비행 종료"
	LabelUnknown     = "정보 없음"
)
