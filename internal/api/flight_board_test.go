package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"regional-airports/flightboard/internal/models"
	"regional-airports/flightboard/internal/models/dtos"
	"regional-airports/flightboard/internal/services"
)

// Mock FlightBoard
type mockFlightBoard struct {
	boardFunc     func(ctx context.Context, airportCode string, q dtos.BoardQuery) *dtos.Board
	fetchInfoFunc func(ctx context.Context, airportCode, airline string) (*dtos.FlightInfoResponse, error)
	airlinesFunc  func(ctx context.Context, airportCode string) ([]dtos.AirlineSummary, error)
	refreshed     int
}

func (m *mockFlightBoard) Board(ctx context.Context, airportCode string, q dtos.BoardQuery) *dtos.Board {
	return m.boardFunc(ctx, airportCode, q)
}

func (m *mockFlightBoard) FetchInfo(ctx context.Context, airportCode, airline string) (*dtos.FlightInfoResponse, error) {
	return m.fetchInfoFunc(ctx, airportCode, airline)
}

func (m *mockFlightBoard) Airlines(ctx context.Context, airportCode string) ([]dtos.AirlineSummary, error) {
	return m.airlinesFunc(ctx, airportCode)
}

func (m *mockFlightBoard) Refresh() { m.refreshed++ }

// Mock BoardRenderer
type mockRenderer struct {
	renderFunc func(w io.Writer, board *dtos.Board) error
}

func (m *mockRenderer) RenderBoard(w io.Writer, board *dtos.Board) error {
	return m.renderFunc(w, board)
}

func echoRenderer() *mockRenderer {
	return &mockRenderer{
		renderFunc: func(w io.Writer, board *dtos.Board) error {
			_, err := io.WriteString(w, board.AirportCode)
			return err
		},
	}
}

func TestBoardPageHandler_AirportSelection(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		form        url.Values
		wantCode    string
		wantShowAll bool
	}{
		{name: "default", method: http.MethodGet, target: "/", wantCode: "USN"},
		{name: "query", method: http.MethodGet, target: "/?airport_code=gmp", wantCode: "GMP"},
		{name: "show all", method: http.MethodGet, target: "/?airport_code=CJU&show_all=true", wantCode: "CJU", wantShowAll: true},
		{name: "show all other value", method: http.MethodGet, target: "/?show_all=yes", wantCode: "USN"},
		{name: "form post", method: http.MethodPost, target: "/", form: url.Values{"airport_code": {"PUS"}}, wantCode: "PUS"},
		{name: "post ignores query code", method: http.MethodPost, target: "/?airport_code=GMP&show_all=true", form: url.Values{"airport_code": {"RSU"}}, wantCode: "RSU", wantShowAll: true},
		{name: "empty post", method: http.MethodPost, target: "/", form: url.Values{}, wantCode: "USN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCode string
			var gotQuery dtos.BoardQuery
			svc := &mockFlightBoard{
				boardFunc: func(ctx context.Context, airportCode string, q dtos.BoardQuery) *dtos.Board {
					gotCode, gotQuery = airportCode, q
					return &dtos.Board{AirportCode: airportCode}
				},
			}

			var body io.Reader
			if tt.form != nil {
				body = strings.NewReader(tt.form.Encode())
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			if tt.form != nil {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			rr := httptest.NewRecorder()

			BoardPageHandler(svc, echoRenderer(), "USN").ServeHTTP(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rr.Code)
			}
			if gotCode != tt.wantCode {
				t.Errorf("Expected airport %s, got %s", tt.wantCode, gotCode)
			}
			if gotQuery.ShowAll != tt.wantShowAll {
				t.Errorf("Expected show_all %v, got %v", tt.wantShowAll, gotQuery.ShowAll)
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Expected HTML content type, got %s", ct)
			}
			if rr.Body.String() != tt.wantCode {
				t.Errorf("Expected rendered body %s, got %s", tt.wantCode, rr.Body.String())
			}
		})
	}
}

func TestBoardPageHandler_RenderFailure(t *testing.T) {
	svc := &mockFlightBoard{
		boardFunc: func(ctx context.Context, airportCode string, q dtos.BoardQuery) *dtos.Board {
			return &dtos.Board{AirportCode: airportCode}
		},
	}
	renderer := &mockRenderer{
		renderFunc: func(w io.Writer, board *dtos.Board) error {
			_, _ = io.WriteString(w, "<html>partial")
			return errors.New("template: boom")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	BoardPageHandler(svc, renderer, "USN").ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "partial") {
		t.Error("Expected partial output to be discarded")
	}
}

func TestGetAirlinesHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotCode string
		svc := &mockFlightBoard{
			airlinesFunc: func(ctx context.Context, airportCode string) ([]dtos.AirlineSummary, error) {
				gotCode = airportCode
				return []dtos.AirlineSummary{{AirlineCode: "KAL", AirlineName: "대한항공"}}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/get_airlines?airport_code=CJU", nil)
		rr := httptest.NewRecorder()
		GetAirlinesHandler(svc, "USN").ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		if gotCode != "CJU" {
			t.Errorf("Expected CJU, got %s", gotCode)
		}

		var resp dtos.AirlinesResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp.Airlines) != 1 || resp.Airlines[0].AirlineCode != "KAL" {
			t.Errorf("Unexpected airlines %+v", resp.Airlines)
		}
	})

	t.Run("no data", func(t *testing.T) {
		svc := &mockFlightBoard{
			airlinesFunc: func(ctx context.Context, airportCode string) ([]dtos.AirlineSummary, error) {
				if airportCode != "USN" {
					t.Errorf("Expected default airport, got %s", airportCode)
				}
				return nil, services.ErrNoFlightData
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/get_airlines", nil)
		rr := httptest.NewRecorder()
		GetAirlinesHandler(svc, "USN").ServeHTTP(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", rr.Code)
		}
		var resp dtos.ErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Error != "Failed to fetch airlines" {
			t.Errorf("Unexpected error message %q", resp.Error)
		}
	})
}

func TestFetchInfoHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotAirline string
		svc := &mockFlightBoard{
			fetchInfoFunc: func(ctx context.Context, airportCode, airline string) (*dtos.FlightInfoResponse, error) {
				gotAirline = airline
				return &dtos.FlightInfoResponse{
					Departures: []models.FlightRecord{{FlightNumber: "7C102", State: models.StateInFlight}},
					Arrivals:   []models.FlightRecord{},
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/fetch_info?airport_code=USN&airline_name="+url.QueryEscape("제주항공"), nil)
		rr := httptest.NewRecorder()
		FetchInfoHandler(svc, "USN").ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", rr.Code)
		}
		if gotAirline != "제주항공" {
			t.Errorf("Expected airline filter 제주항공, got %q", gotAirline)
		}

		var raw map[string][]map[string]any
		if err := json.NewDecoder(rr.Body).Decode(&raw); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(raw["departures"]) != 1 || raw["departures"][0]["flying2"] != "비행 중" {
			t.Errorf("Unexpected departures %+v", raw["departures"])
		}
		if raw["arrivals"] == nil {
			t.Error("Expected arrivals to be an empty list, not null")
		}
	})

	t.Run("no data", func(t *testing.T) {
		svc := &mockFlightBoard{
			fetchInfoFunc: func(ctx context.Context, airportCode, airline string) (*dtos.FlightInfoResponse, error) {
				return nil, services.ErrNoFlightData
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/fetch_info", nil)
		rr := httptest.NewRecorder()
		FetchInfoHandler(svc, "USN").ServeHTTP(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", rr.Code)
		}
		var resp dtos.ErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Error != "Failed to fetch flight info" {
			t.Errorf("Unexpected error message %q", resp.Error)
		}
	})
}

func TestRefreshCacheHandler(t *testing.T) {
	svc := &mockFlightBoard{}

	req := httptest.NewRequest(http.MethodPost, "/admin/cache/refresh", nil)
	rr := httptest.NewRecorder()
	RefreshCacheHandler(svc).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if svc.refreshed != 1 {
		t.Errorf("Expected one refresh, got %d", svc.refreshed)
	}

	var resp dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Expected status ok, got %s", resp.Status)
	}
}
