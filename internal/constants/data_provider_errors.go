package constants

// Upstream Provider Error Codes
// These constants define specific error scenarios for the airport flight status API

// Transport-related errors
const (
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeUpstreamHTTPError = "UPSTREAM_HTTP_ERROR"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeTimeout           = "UPSTREAM_TIMEOUT"
)

// Payload-related errors
const (
	ErrCodeDecodeError         = "DECODE_ERROR"
	ErrCodeUpstreamResultError = "UPSTREAM_RESULT_ERROR"
)

// Error Messages
// Human-readable messages corresponding to error codes

var DataProviderErrorMessages = map[string]string{
	ErrCodeNetworkError:      "Unable to reach the airport flight status API",
	ErrCodeUpstreamHTTPError: "The airport flight status API returned an unexpected HTTP status",
	ErrCodeRateLimited:       "Rate limit exceeded on the airport flight status API",
	ErrCodeTimeout:           "The airport flight status API did not answer in time",

	ErrCodeDecodeError:         "The airport flight status API returned a payload that could not be decoded",
	ErrCodeUpstreamResultError: "The airport flight status API reported an error result",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := DataProviderErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
