// Package tomtom provides a client for the TomTom Traffic Flow API.
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
	"github.com/ecoroute/ecoroute/internal/traffic"
)

const (
	// ProviderName identifies this traffic provider. The suffix keeps it
	// distinct from the TomTom routing client in the health registry.
	ProviderName = "tomtom-traffic"

	// DefaultBaseURL is the TomTom API base URL.
	DefaultBaseURL = "https://api.tomtom.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the traffic client.
type ClientConfig struct {
	// APIKey is the TomTom API key (required).
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

// Client is a TomTom Traffic Flow API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new TomTom traffic client.
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

// Name returns the provider identifier.
func (c *Client) Name() string {
	return ProviderName
}

// flowResponse is the flow segment data envelope.
type flowResponse struct {
	FlowSegmentData struct {
		FRC             string  `json:"frc"`
		CurrentSpeed    float64 `json:"currentSpeed"`
		FreeFlowSpeed   float64 `json:"freeFlowSpeed"`
		Confidence      float64 `json:"confidence"`
		RoadClosure     bool    `json:"roadClosure"`
		CurrentTravelTm float64 `json:"currentTravelTime"`
	} `json:"flowSegmentData"`
}

// GetFlow retrieves flow data for the road segment nearest the center of
// the area, as a representative sample of area-wide conditions.
func (c *Client) GetFlow(ctx context.Context, area traffic.BBox) (*traffic.Snapshot, error) {
	lat, lon := area.Center()

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("point", strconv.FormatFloat(lat, 'f', -1, 64)+","+strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("unit", "KMPH")

	reqURL := c.baseURL + "/traffic/services/4/flowSegmentData/relative0/10/json?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", traffic.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", traffic.ErrProviderUnavailable, resp.StatusCode)
	}

	var flow flowResponse
	if err := json.Unmarshal(body, &flow); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	snapshot := &traffic.Snapshot{
		Provider:         ProviderName,
		CurrentSpeedKPH:  flow.FlowSegmentData.CurrentSpeed,
		FreeFlowSpeedKPH: flow.FlowSegmentData.FreeFlowSpeed,
		Confidence:       flow.FlowSegmentData.Confidence,
		RoadClosure:      flow.FlowSegmentData.RoadClosure,
		FetchedAt:        time.Now(),
	}

	c.logger.Debug().
		Float64("current_speed", snapshot.CurrentSpeedKPH).
		Float64("free_flow_speed", snapshot.FreeFlowSpeedKPH).
		Float64("congestion", snapshot.CongestionLevel()).
		Msg("received traffic flow from TomTom")

	return snapshot, nil
}
