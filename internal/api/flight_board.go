package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"regional-airports/flightboard/internal/constants"
	"regional-airports/flightboard/internal/logging"
	"regional-airports/flightboard/internal/models/dtos"
	"regional-airports/flightboard/internal/services"
)

// FlightBoard is the service surface the handlers depend on.
type FlightBoard interface {
	Board(ctx context.Context, airportCode string, q dtos.BoardQuery) *dtos.Board
	FetchInfo(ctx context.Context, airportCode, airline string) (*dtos.FlightInfoResponse, error)
	Airlines(ctx context.Context, airportCode string) ([]dtos.AirlineSummary, error)
	Refresh()
}

// BoardRenderer turns a board into the HTML page.
type BoardRenderer interface {
	RenderBoard(w io.Writer, board *dtos.Board) error
}

// BoardPageHandler handles GET|POST /
//
// airport_code comes from the form body on POST and from the query string on GET.
// show_all is always read from the query string.
func BoardPageHandler(svc FlightBoard, renderer BoardRenderer, defaultAirport string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := defaultAirport
		if r.Method == http.MethodPost {
			code = normalizeAirportCode(r.PostFormValue("airport_code"), defaultAirport)
		} else if r.URL.Query().Has("airport_code") {
			code = normalizeAirportCode(r.URL.Query().Get("airport_code"), defaultAirport)
		}

		q := dtos.BoardQuery{
			ShowAll: r.URL.Query().Get("show_all") == "true",
		}

		board := svc.Board(r.Context(), code, q)

		// Render into a buffer so a template failure can still become a clean 500.
		var buf bytes.Buffer
		if err := renderer.RenderBoard(&buf, board); err != nil {
			logging.WithRequest(middleware.GetReqID(r.Context()), code, "/").Errorw("Board render failed",
				"error", err.Error(),
			)
			http.Error(w, constants.MsgFailedToRender, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

// GetAirlinesHandler handles GET /get_airlines
func GetAirlinesHandler(svc FlightBoard, defaultAirport string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := normalizeAirportCode(r.URL.Query().Get("airport_code"), defaultAirport)

		airlines, err := svc.Airlines(r.Context(), code)
		if err != nil {
			logging.WithRequest(middleware.GetReqID(r.Context()), code, "/get_airlines").Warnw("Airlines unavailable",
				"error", err.Error(),
			)
			respondWithError(w, http.StatusInternalServerError, constants.MsgFailedToFetchAirlines)
			return
		}

		writeJSON(w, http.StatusOK, dtos.AirlinesResponse{Airlines: airlines})
	}
}

// FetchInfoHandler handles GET /fetch_info
func FetchInfoHandler(svc FlightBoard, defaultAirport string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := normalizeAirportCode(r.URL.Query().Get("airport_code"), defaultAirport)
		airline := r.URL.Query().Get("airline_name")

		info, err := svc.FetchInfo(r.Context(), code, airline)
		if err != nil {
			log := logging.WithRequest(middleware.GetReqID(r.Context()), code, "/fetch_info")
			if errors.Is(err, services.ErrNoFlightData) {
				log.Warnw("No flight data for airport", "airline_name", airline)
			} else {
				log.Errorw("Flight info failed", "error", err.Error())
			}
			respondWithError(w, http.StatusInternalServerError, constants.MsgFailedToFetchFlightInfo)
			return
		}

		writeJSON(w, http.StatusOK, info)
	}
}

func normalizeAirportCode(raw, defaultAirport string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return defaultAirport
	}
	return code
}
