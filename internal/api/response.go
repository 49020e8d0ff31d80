package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"regional-airports/flightboard/internal/constants"
	"regional-airports/flightboard/internal/logging"
	"regional-airports/flightboard/internal/models/dtos"
)

// writeJSON marshals body and writes it with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}

// respondWithError sends the {"error": message} body used by the query endpoints.
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, dtos.ErrorResponse{Error: message})
}

// respondWithStatus sends the operational envelope used by admin endpoints.
func respondWithStatus(w http.ResponseWriter, initTime time.Time, message string, data any) {
	writeJSON(w, http.StatusOK, dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: responseTime(initTime),
		Data:         data,
	})
}

func responseTime(init time.Time) string {
	return fmt.Sprintf("%dms", time.Since(init).Milliseconds())
}
