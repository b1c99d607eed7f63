// Package osrm provides a client for the OSRM routing engine, used as a
// keyless open-data baseline alongside the commercial providers.
package osrm

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
	ProviderName = "osrm"

	// DefaultBaseURL is the public OSRM demo server.
	DefaultBaseURL = "https://router.project-osrm.org"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the OSRM client.
type ClientConfig struct {
	// BaseURL overrides the OSRM server URL (no API key required).
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

// Client is an OSRM API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new OSRM routing client.
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
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider tag.
func (c *Client) Name() string {
	return ProviderName
}

// GetRoutes retrieves route candidates from OSRM. OSRM has no traffic
// model, so the delay is always zero.
func (c *Client) GetRoutes(ctx context.Context, q routing.RouteQuery) ([]routing.RawRoute, error) {
	if err := q.Validate(); err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "INVALID_QUERY",
			Message:  "invalid route query",
			Err:      routing.ErrInvalidCoordinates,
		}
	}

	// OSRM takes lon,lat pairs separated by semicolons.
	coords := make([]string, 0, len(q.Stops)+2)
	coords = append(coords, formatPoint(q.Origin))
	for _, s := range q.Stops {
		coords = append(coords, formatPoint(s))
	}
	coords = append(coords, formatPoint(q.Destination))

	params := url.Values{}
	params.Set("overview", "full")
	params.Set("alternatives", "true")

	reqURL := fmt.Sprintf("%s/route/v1/driving/%s?%s",
		c.baseURL, strings.Join(coords, ";"), params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger.Debug().
		Int("waypoints", len(q.Stops)).
		Msg("requesting routes from OSRM")

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

	var osrmResp routeResponse
	if err := json.Unmarshal(body, &osrmResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &routing.Error{
				Provider: ProviderName,
				Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
				Message:  fmt.Sprintf("routing provider returned status %d", resp.StatusCode),
				Err:      routing.ErrProviderUnavailable,
			}
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if osrmResp.Code != codeOK {
		return nil, c.handleAPICode(&osrmResp)
	}

	routes := c.toRawRoutes(&osrmResp)

	c.logger.Debug().
		Int("route_count", len(routes)).
		Msg("received routes from OSRM")

	return routes, nil
}

func (c *Client) toRawRoutes(resp *routeResponse) []routing.RawRoute {
	routes := make([]routing.RawRoute, 0, len(resp.Routes))

	for i := range resp.Routes {
		r := &resp.Routes[i]
		raw, _ := json.Marshal(r)

		routes = append(routes, routing.RawRoute{
			Provider: ProviderName,
			RouteID:  fmt.Sprintf("osrm-%d", i),
			Summary: routing.Summary{
				LengthMeters:      r.Distance,
				TravelTimeSeconds: r.Duration,
			},
			GeometryPolyline: r.Geometry,
			Raw:              raw,
		})
	}

	return routes
}

func (c *Client) handleAPICode(resp *routeResponse) error {
	msg := resp.Message
	if msg == "" {
		msg = "route request failed with code " + resp.Code
	}

	switch resp.Code {
	case codeNoRoute, codeNoSegment:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Code,
			Message:  msg,
			Err:      routing.ErrNoRoutesFound,
		}
	case codeInvalidQuery:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Code,
			Message:  msg,
			Err:      routing.ErrInvalidCoordinates,
		}
	default:
		return &routing.Error{
			Provider: ProviderName,
			Code:     resp.Code,
			Message:  msg,
			Err:      routing.ErrProviderUnavailable,
		}
	}
}

func formatPoint(p routing.Point) string {
	return strconv.FormatFloat(p.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}
