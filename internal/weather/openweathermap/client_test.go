package openweathermap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoroute/ecoroute/internal/weather"
)

const currentWeatherFixture = `{
	"coord": {"lon": 80.27, "lat": 13.08},
	"weather": [{"id": 500, "main": "Rain", "description": "light rain"}],
	"main": {"temp": 29.4, "humidity": 78},
	"wind": {"speed": 4.6, "deg": 210},
	"dt": 1700000000,
	"name": "Chennai"
}`

func TestCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(currentWeatherFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIKey: "test-key", BaseURL: server.URL})

	obs, err := client.Current(context.Background(), 13.0827, 80.2707)
	require.NoError(t, err)

	assert.Equal(t, weather.ConditionRain, obs.Condition)
	assert.Equal(t, "light rain", obs.Description)
	assert.Equal(t, 29.4, obs.Temperature)
	assert.Equal(t, 4.6, obs.WindSpeed)
	assert.True(t, obs.IsRain())
}

func TestCurrentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIKey: "bad-key", BaseURL: server.URL, HTTPClient: http.DefaultClient})

	_, err := client.Current(context.Background(), 13.0827, 80.2707)
	require.Error(t, err)
	assert.ErrorIs(t, err, weather.ErrProviderUnavailable)
}

func TestMapCondition(t *testing.T) {
	assert.Equal(t, weather.ConditionSnow, mapCondition("Snow"))
	assert.Equal(t, weather.ConditionHaze, mapCondition("Dust"))
	assert.Equal(t, weather.ConditionUnknown, mapCondition("Meteor"))
}
