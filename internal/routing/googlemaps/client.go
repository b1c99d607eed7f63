// Package googlemaps provides a client for the Google Directions API, used
// as a second opinion alongside TomTom.
package googlemaps

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

	"github.com/rs/zerolog"

	"github.com/ecoroute/ecoroute/internal/provider/resilience"
	"github.com/ecoroute/ecoroute/internal/routing"
)

const (
	// ProviderName identifies this routing provider.
	ProviderName = "googlemaps"

	// DefaultBaseURL is the Google Maps API base URL.
	DefaultBaseURL = "https://maps.googleapis.com/maps/api"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Google Maps client.
type ClientConfig struct {
	// APIKey is the Google Maps API key (required).
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// HTTPClient overrides the HTTP client.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (default 10s).
	Timeout time.Duration

	// Registry is the provider health registry (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Directions API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Google Maps routing client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:     ProviderName,
			Timeout:  timeout,
			Registry: cfg.Registry,
		})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider tag.
func (c *Client) Name() string {
	return ProviderName
}

// GetRoutes retrieves alternative driving routes from Google Directions.
func (c *Client) GetRoutes(ctx context.Context, q routing.RouteQuery) ([]routing.RawRoute, error) {
	if err := q.Validate(); err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "INVALID_QUERY",
			Message:  "invalid route query",
			Err:      routing.ErrInvalidCoordinates,
		}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("origin", formatPoint(q.Origin))
	params.Set("destination", formatPoint(q.Destination))
	params.Set("mode", "driving")
	params.Set("departure_time", "now")
	params.Set("alternatives", "true")

	if len(q.Stops) > 0 {
		wps := make([]string, len(q.Stops))
		for i, s := range q.Stops {
			wps[i] = formatPoint(s)
		}
		params.Set("waypoints", strings.Join(wps, "|"))
	}

	reqURL := c.baseURL + "/directions/json?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger.Debug().
		Int("waypoints", len(q.Stops)).
		Msg("requesting directions from Google Maps")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach routing provider",
			Err:      routing.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  fmt.Sprintf("routing provider returned status %d", resp.StatusCode),
			Err:      routing.ErrProviderUnavailable,
		}
	}

	var gmResp directionsResponse
	if err := json.Unmarshal(body, &gmResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	// Google reports errors in-band through the status field.
	if gmResp.Status != statusOK {
		return nil, c.handleAPIStatus(&gmResp)
	}

	routes := c.toRawRoutes(&gmResp)

	c.logger.Debug().
		Int("route_count", len(routes)).
		Msg("received directions from Google Maps")

	return routes, nil
}

// toRawRoutes converts the Directions response into domain raw routes.
// Leg metrics are summed; the traffic delay is the surplus of the
// traffic-aware duration over the nominal one, floored at zero.
func (c *Client) toRawRoutes(resp *directionsResponse) []routing.RawRoute {
	routes := make([]routing.RawRoute, 0, len(resp.Routes))

	for i := range resp.Routes {
		r := &resp.Routes[i]

		var distance, duration, inTraffic float64
		for _, l := range r.Legs {
			distance += l.Distance.Value
			duration += l.Duration.Value
			inTraffic += l.DurationInTraffic.Value
		}
		delay := inTraffic - duration
		if delay < 0 {
			delay = 0
		}

		raw, _ := json.Marshal(r)

		routes = append(routes, routing.RawRoute{
			Provider: ProviderName,
			RouteID:  fmt.Sprintf("gm-%d", i),
			Summary: routing.Summary{
				LengthMeters:        distance,
				TravelTimeSeconds:   duration,
				TrafficDelaySeconds: delay,
			},
			GeometryPolyline: r.OverviewPolyline.Points,
			Raw:              raw,
		})
	}

	return routes
}

func (c *Client) handleAPIStatus(resp *directionsResponse) error {
	msg := resp.ErrorMessage
	if msg == "" {
		msg = "directions request failed with status " + resp.Status
	}

	switch resp.Status {
	case statusZeroResults, statusNotFoundLocation:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  msg,
			Err:      routing.ErrNoRoutesFound,
		}
	case statusOverQueryLimit:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  msg,
			Err:      routing.ErrRateLimitExceeded,
		}
	case statusInvalidRequest:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  msg,
			Err:      routing.ErrInvalidCoordinates,
		}
	default:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Status,
			Message:  msg,
			Err:      routing.ErrProviderUnavailable,
		}
	}
}

func formatPoint(p routing.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}
