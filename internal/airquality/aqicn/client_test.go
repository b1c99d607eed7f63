package aqicn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoroute/ecoroute/internal/airquality"
)

const feedFixture = `{
	"status": "ok",
	"data": {
		"aqi": 62,
		"idx": 12407,
		"dominentpol": "pm25",
		"city": {
			"name": "Alandur Bus Depot, Chennai, India",
			"geo": [12.9941, 80.1709]
		}
	}
}`

func TestCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/feed/geo:"))
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Token: "test-token", BaseURL: server.URL})

	obs, err := client.Current(context.Background(), 13.0, 80.2)
	require.NoError(t, err)

	assert.Equal(t, ProviderName, obs.Provider)
	assert.Equal(t, 62.0, obs.AQI)
	assert.Equal(t, "pm25", obs.Dominant)
	assert.Contains(t, obs.StationName, "Chennai")
}

func TestCurrentErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "data": "Unknown station"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Token: "test-token", BaseURL: server.URL})

	_, err := client.Current(context.Background(), 0, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, airquality.ErrNoData)
	assert.Contains(t, err.Error(), "Unknown station")
}

func TestCurrentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Token: "test-token", BaseURL: server.URL, HTTPClient: http.DefaultClient})

	_, err := client.Current(context.Background(), 13.0, 80.2)
	require.Error(t, err)
	assert.ErrorIs(t, err, airquality.ErrProviderUnavailable)
}
