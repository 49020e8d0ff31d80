package providers

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"regional-airports/flightboard/internal/constants"
	"regional-airports/flightboard/internal/models"
)

// maxErrorBody caps how much of a failed response is kept for logging.
const maxErrorBody = 2048

// AirportFlightProvider fetches flight status from the Korea Airports Corporation OpenAPI
type AirportFlightProvider struct {
	BaseURL string
	APIKey  string
	Rows    int
	Client  *http.Client
}

// Ensure AirportFlightProvider implements FeedFetcher
var _ FeedFetcher = (*AirportFlightProvider)(nil)

// NewAirportFlightProvider creates a provider for the given endpoint and service key
func NewAirportFlightProvider(baseURL, apiKey string, rows int, timeout time.Duration) *AirportFlightProvider {
	if rows <= 0 {
		rows = 1000
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AirportFlightProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Rows:    rows,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *AirportFlightProvider) GetProviderType() string {
	return "kac_flight_status"
}

// ============================================================================
// Upstream payload
// ============================================================================

// flightStatusEnvelope matches both the normal <response> document and the
// <OpenAPI_ServiceResponse> document the gateway sends for key or quota errors.
type flightStatusEnvelope struct {
	Header struct {
		ResultCode string `xml:"resultCode"`
		ResultMsg  string `xml:"resultMsg"`
	} `xml:"header"`
	GatewayHeader struct {
		ErrMsg           string `xml:"errMsg"`
		ReturnAuthMsg    string `xml:"returnAuthMsg"`
		ReturnReasonCode string `xml:"returnReasonCode"`
	} `xml:"cmmMsgHeader"`
	Items []flightStatusItem `xml:"body>items>item"`
}

// Every element is optional upstream.
type flightStatusItem struct {
	AirFln         *string `xml:"airFln"`
	AirlineKorean  *string `xml:"airlineKorean"`
	AirlineEnglish *string `xml:"airlineEnglish"`
	BoardingKor    *string `xml:"boardingKor"`
	ArrivedKor     *string `xml:"arrivedKor"`
	Std            *string `xml:"std"`
	Etd            *string `xml:"etd"`
	RmkKor         *string `xml:"rmkKor"`
	Gate           *string `xml:"gate"`
	IO             *string `xml:"io"`
}

// ============================================================================
// Fetch
// ============================================================================

// FetchFeed fetches all domestic flights for an airport and splits them by direction.
// The airport code is passed through as-is; an unknown code yields an empty feed.
func (p *AirportFlightProvider) FetchFeed(ctx context.Context, airportCode string) (*models.Feed, int, error) {
	params := url.Values{}
	params.Set("ServiceKey", p.APIKey)
	params.Set("schAirCode", airportCode)
	params.Set("schLineType", "D")
	params.Set("numOfRows", strconv.Itoa(p.Rows))

	body, status, err := p.doGET(ctx, params)
	if err != nil {
		return nil, status, err
	}

	feed, err := ParseFlightStatus(body)
	if err != nil {
		return nil, status, err
	}
	return feed, status, nil
}

// ParseFlightStatus decodes an upstream XML document into a Feed.
// Entries whose io flag is neither "O" nor "I" are dropped.
func ParseFlightStatus(body []byte) (*models.Feed, error) {
	var env flightStatusEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeDecodeError,
			Message: constants.GetErrorMessage(constants.ErrCodeDecodeError),
			Details: truncate(string(body), maxErrorBody),
			Err:     err,
		}
	}

	if env.GatewayHeader.ReturnReasonCode != "" || env.GatewayHeader.ErrMsg != "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeUpstreamResultError,
			Message: fmt.Sprintf("gateway error %s: %s", env.GatewayHeader.ReturnReasonCode, env.GatewayHeader.ReturnAuthMsg),
			Details: env.GatewayHeader.ErrMsg,
		}
	}

	switch code := strings.TrimSpace(env.Header.ResultCode); code {
	case "", "0", "00":
	default:
		return nil, &ProviderError{
			Code:    constants.ErrCodeUpstreamResultError,
			Message: fmt.Sprintf("result code %s: %s", code, strings.TrimSpace(env.Header.ResultMsg)),
		}
	}

	feed := &models.Feed{
		Departures: []models.FlightRecord{},
		Arrivals:   []models.FlightRecord{},
	}
	for _, item := range env.Items {
		dir, ok := models.ParseDirection(text(item.IO, ""))
		if !ok {
			continue
		}

		rec := models.FlightRecord{
			FlightNumber:    text(item.AirFln, ""),
			AirlineName:     text(item.AirlineKorean, ""),
			AirlineNameEn:   text(item.AirlineEnglish, ""),
			OriginName:      text(item.BoardingKor, ""),
			DestinationName: text(item.ArrivedKor, ""),
			ScheduledTime:   text(item.Std, ""),
			EstimatedTime:   text(item.Etd, constants.SentinelTime),
			Remark:          text(item.RmkKor, ""),
			Gate:            text(item.Gate, constants.SentinelGate),
			Direction:       dir,
		}

		if dir == models.DirectionDeparture {
			feed.Departures = append(feed.Departures, rec)
		} else {
			feed.Arrivals = append(feed.Arrivals, rec)
		}
	}

	return feed, nil
}

// text returns the trimmed element text, or def when the element is absent or blank.
func text(s *string, def string) string {
	if s == nil {
		return def
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return def
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// ============================================================================
// HTTP Helper Methods
// ============================================================================

// doGET performs the GET request and returns the raw body
func (p *AirportFlightProvider) doGET(ctx context.Context, params url.Values) ([]byte, int, error) {
	// Build request
	endpoint := p.BaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Accept", "application/xml")

	// Execute request
	resp, err := p.Client.Do(req)
	if err != nil {
		code := constants.ErrCodeNetworkError
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			code = constants.ErrCodeTimeout
		}
		return nil, 0, &ProviderError{
			Code:    code,
			Message: constants.GetErrorMessage(code),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	bodyBytes, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, resp.StatusCode, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to read response body",
			Err:     readErr,
		}
	}

	// Handle HTTP errors
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, p.buildHTTPError(resp.StatusCode, truncate(string(bodyBytes), maxErrorBody))
	}

	return bodyBytes, resp.StatusCode, nil
}

// buildHTTPError creates appropriate error based on status code
func (p *AirportFlightProvider) buildHTTPError(statusCode int, body string) error {
	switch statusCode {
	case http.StatusTooManyRequests:
		return &ProviderError{
			Code:    constants.ErrCodeRateLimited,
			Message: constants.GetErrorMessage(constants.ErrCodeRateLimited),
			Details: body,
		}
	case http.StatusGatewayTimeout:
		return &ProviderError{
			Code:    constants.ErrCodeTimeout,
			Message: constants.GetErrorMessage(constants.ErrCodeTimeout),
			Details: body,
		}
	default:
		return &ProviderError{
			Code:    constants.ErrCodeUpstreamHTTPError,
			Message: fmt.Sprintf("HTTP %d from flight status API", statusCode),
			Details: body,
		}
	}
}
