package optimizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoroute/ecoroute/internal/routing"
)

func TestCachePutGet(t *testing.T) {
	cache := NewCache(time.Minute)
	result := &Result{Status: StatusSuccess}

	cache.Put("k", result)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Same(t, result, got)
}

func TestCacheMiss(t *testing.T) {
	cache := NewCache(time.Minute)

	_, ok := cache.Get("absent")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(600 * time.Second)

	now := time.Unix(1700000000, 0)
	cache.now = func() time.Time { return now }

	cache.Put("k", &Result{Status: StatusSuccess})

	now = now.Add(599 * time.Second)
	_, ok := cache.Get("k")
	assert.True(t, ok, "entry should be valid just before TTL")

	now = now.Add(time.Second)
	_, ok = cache.Get("k")
	assert.False(t, ok, "entry should expire at TTL")

	// Lazy expiry drops the entry on read.
	assert.Zero(t, cache.Len())
}

func TestCacheLastWriteWins(t *testing.T) {
	cache := NewCache(time.Minute)

	first := &Result{Status: StatusSuccess}
	second := &Result{Status: StatusError}
	cache.Put("k", first)
	cache.Put("k", second)

	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestCacheKeyDeterministic(t *testing.T) {
	req := Request{
		Origin:      routing.Point{Lat: 13.0827, Lon: 80.2707},
		Destination: routing.Point{Lat: 12.9941, Lon: 80.1709},
		Stops:       []routing.Point{{Lat: 13.0, Lon: 80.2}, {Lat: 12.99, Lon: 80.18}},
		VehicleType: "delivery_van",
		Priority:    PriorityTime,
	}

	assert.Equal(t, CacheKey(req), CacheKey(req))
}

func TestCacheKeyStopOrderSensitive(t *testing.T) {
	base := Request{
		Origin:      routing.Point{Lat: 13.0827, Lon: 80.2707},
		Destination: routing.Point{Lat: 12.9941, Lon: 80.1709},
		Stops:       []routing.Point{{Lat: 13.0, Lon: 80.2}, {Lat: 12.99, Lon: 80.18}},
		VehicleType: "delivery_van",
		Priority:    PriorityTime,
	}

	reordered := base
	reordered.Stops = []routing.Point{{Lat: 12.99, Lon: 80.18}, {Lat: 13.0, Lon: 80.2}}

	assert.NotEqual(t, CacheKey(base), CacheKey(reordered))
}

func TestCacheKeyVariesBySemanticFields(t *testing.T) {
	base := Request{
		Origin:      routing.Point{Lat: 13.0827, Lon: 80.2707},
		Destination: routing.Point{Lat: 12.9941, Lon: 80.1709},
		VehicleType: "delivery_van",
		Priority:    PriorityTime,
	}

	vehicle := base
	vehicle.VehicleType = "box_truck"
	assert.NotEqual(t, CacheKey(base), CacheKey(vehicle))

	priority := base
	priority.Priority = PriorityEmissions
	assert.NotEqual(t, CacheKey(base), CacheKey(priority))

	moved := base
	moved.Destination = routing.Point{Lat: 12.9942, Lon: 80.1709}
	assert.NotEqual(t, CacheKey(base), CacheKey(moved))

	loaded := base
	loaded.PayloadKG = 2000
	assert.NotEqual(t, CacheKey(base), CacheKey(loaded))

	capped := base
	capped.MaxAlternatives = 1
	assert.NotEqual(t, CacheKey(base), CacheKey(capped))
}
