package dtos

import "regional-airports/flightboard/internal/models"

// AirlinesResponse is returned by GET /get_airlines.
type AirlinesResponse struct {
	Airlines []AirlineSummary `json:"airlines"`
}

// FlightInfoResponse is returned by GET /fetch_info.
type FlightInfoResponse struct {
	Departures []models.FlightRecord `json:"departures"`
	Arrivals   []models.FlightRecord `json:"arrivals"`
}

// ErrorResponse is the body of every failed query endpoint call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// APIResponse is the envelope used by the operational endpoints.
type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message,omitempty"`
	ResponseTime string `json:"responseTime"`
	Data         any    `json:"data,omitempty"`
}
