// Package googlemaps provides a client for the Google Maps Geocoding API.
package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ecoroute/ecoroute/internal/geocoding"
	"github.com/ecoroute/ecoroute/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "googlemaps-geocoding"

	// DefaultBaseURL is the Google Maps API base URL.
	DefaultBaseURL = "https://maps.googleapis.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the geocoding client.
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

// Client is a Google Maps Geocoding API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new geocoding client.
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

// geocodeResponse is the Geocoding API envelope. Errors are signalled
// in-band via the status field.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves an address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (*geocoding.Location, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	reqURL := c.baseURL + "/maps/api/geocode/json?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", geocoding.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", geocoding.ErrProviderUnavailable, resp.StatusCode)
	}

	var geo geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	switch geo.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, geocoding.ErrNotFound
	default:
		return nil, fmt.Errorf("%w: %s (%s)", geocoding.ErrProviderUnavailable, geo.Status, geo.ErrorMessage)
	}

	if len(geo.Results) == 0 {
		return nil, geocoding.ErrNotFound
	}

	result := geo.Results[0]
	loc := &geocoding.Location{
		Name: result.FormattedAddress,
		Lat:  result.Geometry.Location.Lat,
		Lon:  result.Geometry.Location.Lng,
	}

	c.logger.Debug().
		Str("address", address).
		Float64("lat", loc.Lat).
		Float64("lon", loc.Lon).
		Msg("geocoded address via Google Maps")

	return loc, nil
}
