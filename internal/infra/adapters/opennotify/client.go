package opennotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"iss-telemetry-bot/internal/domain"
	"iss-telemetry-bot/internal/domain/model"
	"iss-telemetry-bot/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

const (
	PathPosition  = "/iss-now.json"
	PathCrew      = "/astros.json"
	PathPassTimes = "/iss-pass.json"

	maxBodyBytes = 1 << 20
	userAgent    = "iss-telemetry-bot/1.0"
)

var _ adapter.TelemetryClient = (*Client)(nil)

// Client talks to the Open Notify API. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zerolog.Logger
}

// NewClient creates an Open Notify client. httpClient carries the timeout and
// proxy; nil gets a plain client with timeout.
func NewClient(baseURL string, httpClient *http.Client, timeout time.Duration, logger *zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	l := logger.With().Str("component", "OpenNotifyClient").Logger()
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        &l,
	}
}

type positionPayload struct {
	Message     string `json:"message"`
	Timestamp   int64  `json:"timestamp"`
	ISSPosition *struct {
		Latitude  model.Degrees `json:"latitude"`
		Longitude model.Degrees `json:"longitude"`
	} `json:"iss_position"`
}

type crewPayload struct {
	Message string `json:"message"`
	Number  *int   `json:"number"`
	People  *[]struct {
		Name  string `json:"name"`
		Craft string `json:"craft"`
	} `json:"people"`
}

type passPayload struct {
	Message  string `json:"message"`
	Response *[]struct {
		Duration int   `json:"duration"`
		RiseTime int64 `json:"risetime"`
	} `json:"response"`
}

// Position fetches the current ground point of the station.
func (c *Client) Position(ctx context.Context) (*model.Position, model.RemoteResult, error) {
	var p positionPayload
	res, err := c.get(ctx, PathPosition, nil, &p)
	if err != nil || !res.OK() {
		return nil, res, err
	}
	if p.ISSPosition == nil || p.ISSPosition.Latitude == "" || p.ISSPosition.Longitude == "" {
		return nil, res, fmt.Errorf("%w: iss_position missing in %s", domain.ErrMalformedPayload, res.URL)
	}
	return &model.Position{
		Latitude:  p.ISSPosition.Latitude,
		Longitude: p.ISSPosition.Longitude,
		Timestamp: p.Timestamp,
	}, res, nil
}

// Crew fetches everyone currently in space.
func (c *Client) Crew(ctx context.Context) (*model.Crew, model.RemoteResult, error) {
	var p crewPayload
	res, err := c.get(ctx, PathCrew, nil, &p)
	if err != nil || !res.OK() {
		return nil, res, err
	}
	if p.Number == nil || p.People == nil {
		return nil, res, fmt.Errorf("%w: number or people missing in %s", domain.ErrMalformedPayload, res.URL)
	}
	crew := &model.Crew{Number: *p.Number, People: make([]model.Astronaut, 0, len(*p.People))}
	for _, person := range *p.People {
		crew.People = append(crew.People, model.Astronaut{Name: person.Name, Craft: person.Craft})
	}
	return crew, res, nil
}

// PassTimes fetches the upcoming visible passes over at.
func (c *Client) PassTimes(ctx context.Context, at model.GeoPoint) (*model.PassTimes, model.RemoteResult, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(at.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(at.Longitude, 'f', -1, 64))

	var p passPayload
	res, err := c.get(ctx, PathPassTimes, q, &p)
	if err != nil || !res.OK() {
		return nil, res, err
	}
	if p.Response == nil {
		return nil, res, fmt.Errorf("%w: response missing in %s", domain.ErrMalformedPayload, res.URL)
	}
	passes := &model.PassTimes{Location: at, Passes: make([]model.Pass, 0, len(*p.Response))}
	for _, r := range *p.Response {
		passes.Passes = append(passes.Passes, model.Pass{RiseTime: r.RiseTime, Duration: r.Duration})
	}
	return passes, res, nil
}

// get issues one GET. The body is decoded into out only on 200; on any other
// status it is returned in the result for the caller to log.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (model.RemoteResult, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	res := model.RemoteResult{URL: target}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return res, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return res, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			c.log.Warn().Err(closeErr).Msg("closing response body")
		}
	}(resp.Body)

	res.StatusCode = resp.StatusCode
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return res, fmt.Errorf("read %s: %w", target, err)
	}

	c.log.Debug().
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("telemetry request")

	if !res.OK() {
		res.Body = body
		return res, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		res.Body = body
		return res, fmt.Errorf("%w: decode %s: %v", domain.ErrMalformedPayload, target, err)
	}
	return res, nil
}
