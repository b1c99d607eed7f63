package tomtom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoroute/ecoroute/internal/traffic"
)

const flowFixture = `{
	"flowSegmentData": {
		"frc": "FRC0",
		"currentSpeed": 32,
		"freeFlowSpeed": 60,
		"currentTravelTime": 110,
		"confidence": 0.95,
		"roadClosure": false
	}
}`

func testArea() traffic.BBox {
	return traffic.BBox{MinLat: 12.99, MinLon: 80.12, MaxLat: 13.13, MaxLon: 80.32}
}

func TestGetFlow(t *testing.T) {
	var gotPoint string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		gotPoint = r.URL.Query().Get("point")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(flowFixture))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIKey: "test-key", BaseURL: server.URL})

	snapshot, err := client.GetFlow(context.Background(), testArea())
	require.NoError(t, err)

	parts := strings.Split(gotPoint, ",")
	require.Len(t, parts, 2)
	lat, err := strconv.ParseFloat(parts[0], 64)
	require.NoError(t, err)
	lon, err := strconv.ParseFloat(parts[1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 13.06, lat, 1e-9)
	assert.InDelta(t, 80.22, lon, 1e-9)
	assert.Equal(t, ProviderName, snapshot.Provider)
	assert.Equal(t, 32.0, snapshot.CurrentSpeedKPH)
	assert.Equal(t, 60.0, snapshot.FreeFlowSpeedKPH)
	assert.False(t, snapshot.RoadClosure)
	assert.InDelta(t, 0.4667, snapshot.CongestionLevel(), 0.001)
}

func TestGetFlowServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIKey: "bad-key", BaseURL: server.URL, HTTPClient: http.DefaultClient})

	_, err := client.GetFlow(context.Background(), testArea())
	require.Error(t, err)
	assert.ErrorIs(t, err, traffic.ErrProviderUnavailable)
}

func TestGetFlowMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIKey: "test-key", BaseURL: server.URL})

	_, err := client.GetFlow(context.Background(), testArea())
	require.Error(t, err)
}
