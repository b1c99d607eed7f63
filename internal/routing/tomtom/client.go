// Package tomtom provides a client for the TomTom Routing API, the
// traffic-aware primary routing provider.
package tomtom

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
	ProviderName = "tomtom"

	// DefaultBaseURL is the TomTom API base URL.
	DefaultBaseURL = "https://api.tomtom.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the TomTom client.
type ClientConfig struct {
	// APIKey is the TomTom API key (required).
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// HTTPClient overrides the HTTP client. If nil, a resilient client
	// with defaults is created.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (default 10s).
	Timeout time.Duration

	// Registry is the provider health registry (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a TomTom Routing API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new TomTom routing client.
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

// GetRoutes retrieves traffic-aware route candidates from TomTom.
func (c *Client) GetRoutes(ctx context.Context, q routing.RouteQuery) ([]routing.RawRoute, error) {
	if err := q.Validate(); err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "INVALID_QUERY",
			Message:  "invalid route query",
			Err:      routing.ErrInvalidCoordinates,
		}
	}

	// TomTom takes the route as a colon-separated lat,lon path segment:
	// origin, waypoints in order, destination.
	locs := make([]string, 0, len(q.Stops)+2)
	locs = append(locs, formatPoint(q.Origin))
	for _, s := range q.Stops {
		locs = append(locs, formatPoint(s))
	}
	locs = append(locs, formatPoint(q.Destination))

	maxAlts := q.MaxAlternatives
	if maxAlts <= 0 {
		maxAlts = 2
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("routeType", "fastest")
	params.Set("traffic", "true")
	params.Set("maxAlternatives", strconv.Itoa(maxAlts))
	params.Set("computeTravelTimeFor", "all")
	params.Set("routeRepresentation", "polyline")
	applyVehicleParams(params, q.VehicleType)

	reqURL := fmt.Sprintf("%s/routing/1/calculateRoute/%s/json?%s",
		c.baseURL, strings.Join(locs, ":"), params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger.Debug().
		Int("waypoints", len(q.Stops)).
		Str("vehicle_type", q.VehicleType).
		Msg("requesting routes from TomTom")

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
		return nil, c.handleErrorResponse(resp.StatusCode, body)
	}

	var ttResp calculateRouteResponse
	if err := json.Unmarshal(body, &ttResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	routes := c.toRawRoutes(&ttResp)

	c.logger.Debug().
		Int("route_count", len(routes)).
		Msg("received routes from TomTom")

	return routes, nil
}

// toRawRoutes converts the TomTom response into domain raw routes. Leg
// points are concatenated into one inline geometry sequence.
func (c *Client) toRawRoutes(resp *calculateRouteResponse) []routing.RawRoute {
	routes := make([]routing.RawRoute, 0, len(resp.Routes))

	for i := range resp.Routes {
		r := &resp.Routes[i]

		var points []routing.Point
		for _, l := range r.Legs {
			for _, p := range l.Points {
				points = append(points, routing.Point{Lat: p.Latitude, Lon: p.Longitude})
			}
		}

		raw, _ := json.Marshal(r)

		routes = append(routes, routing.RawRoute{
			Provider: ProviderName,
			RouteID:  fmt.Sprintf("tt-%d", i),
			Summary: routing.Summary{
				LengthMeters:        r.Summary.LengthInMeters,
				TravelTimeSeconds:   r.Summary.TravelTimeInSeconds,
				TrafficDelaySeconds: r.Summary.TrafficDelayInSeconds,
			},
			GeometryPoints: points,
			Raw:            raw,
		})
	}

	return routes
}

func (c *Client) handleErrorResponse(statusCode int, body []byte) error {
	var ttErr errorResponse
	_ = json.Unmarshal(body, &ttErr)

	msg := ttErr.DetailedError.Message
	if msg == "" {
		msg = ttErr.Error.Description
	}

	switch {
	case statusCode == http.StatusTooManyRequests:
		return &routing.Error{
			Provider: ProviderName,
			Code:     "RATE_LIMIT",
			Message:  "API rate limit exceeded",
			Err:      routing.ErrRateLimitExceeded,
		}
	case statusCode == http.StatusBadRequest:
		if msg == "" {
			msg = "no route could be calculated for the given points"
		}
		return &routing.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  msg,
			Err:      routing.ErrNoRoutesFound,
		}
	case statusCode == http.StatusForbidden:
		return &routing.Error{
			Provider: ProviderName,
			Code:     "FORBIDDEN",
			Message:  "API access denied - check API key configuration",
			Err:      routing.ErrProviderUnavailable,
		}
	default:
		if msg == "" {
			msg = fmt.Sprintf("routing provider returned status %d", statusCode)
		}
		return &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", statusCode),
			Message:  msg,
			Err:      routing.ErrProviderUnavailable,
		}
	}
}

// applyVehicleParams adds commercial-vehicle restrictions for van and truck
// vehicle types so TomTom avoids roads they cannot use.
func applyVehicleParams(params url.Values, vehicleType string) {
	switch vehicleType {
	case "delivery_van":
		params.Set("travelMode", "van")
		params.Set("vehicleWeight", "3500")
	case "cargo_truck", "box_truck", "semi_truck":
		params.Set("travelMode", "truck")
		params.Set("vehicleWeight", "12500")
		params.Set("vehicleMaxSpeed", "90")
	default:
		params.Set("travelMode", "car")
	}
}

func formatPoint(p routing.Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}
