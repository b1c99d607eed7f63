// Package aqicn provides a client for the World Air Quality Index
// (aqicn.org) API.
package aqicn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoroute/ecoroute/internal/airquality"
	"github.com/ecoroute/ecoroute/internal/provider/resilience"
)

const (
	// ProviderName identifies this air quality provider.
	ProviderName = "aqicn"

	// DefaultBaseURL is the WAQI API base URL.
	DefaultBaseURL = "https://api.waqi.info"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the AQICN client.
type ClientConfig struct {
	// Token is the WAQI API token (required).
	Token string

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

// Client is a WAQI API client.
type Client struct {
	token      string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new AQICN client.
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
		token:      cfg.Token,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider identifier.
func (c *Client) Name() string {
	return ProviderName
}

// feedResponse is the WAQI geo feed envelope. The API signals errors
// in-band via the status field.
type feedResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type feedData struct {
	AQI      float64 `json:"aqi"`
	Dominant string  `json:"dominentpol"`
	City     struct {
		Name string `json:"name"`
	} `json:"city"`
}

// Current retrieves the latest observation from the station nearest the
// given coordinates.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*airquality.Observation, error) {
	reqURL := fmt.Sprintf("%s/feed/geo:%s;%s/?token=%s",
		c.baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
		c.token,
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", airquality.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", airquality.ErrProviderUnavailable, resp.StatusCode)
	}

	var feed feedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if feed.Status != "ok" {
		// On error the data field carries a message string.
		var msg string
		_ = json.Unmarshal(feed.Data, &msg)
		return nil, fmt.Errorf("%w: %s", airquality.ErrNoData, msg)
	}

	var data feedData
	if err := json.Unmarshal(feed.Data, &data); err != nil {
		return nil, fmt.Errorf("decoding feed data: %w", err)
	}

	obs := &airquality.Observation{
		Provider:    ProviderName,
		AQI:         data.AQI,
		StationName: data.City.Name,
		Dominant:    data.Dominant,
		FetchedAt:   time.Now(),
	}

	c.logger.Debug().
		Float64("aqi", obs.AQI).
		Str("station", obs.StationName).
		Msg("received air quality observation from AQICN")

	return obs, nil
}
