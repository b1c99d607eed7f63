package optimizer

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultCacheTTL bounds the validity of cached results.
const DefaultCacheTTL = 600 * time.Second

// Cache memoizes full optimization results keyed by the semantic
// request. Expiry is lazy: stale entries are dropped on read, no sweeper
// runs. The cache is owned by the service that constructs it.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	result   *Result
	storedAt time.Time
}

// NewCache creates a cache with the given TTL (<=0 means the default).
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached result for a key, or false when absent or
// expired.
func (c *Cache) Get(key string) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.storedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.result, true
}

// Put stores a result under a key, superseding any previous entry.
func (c *Cache) Put(key string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{result: result, storedAt: c.now()}
}

// Len returns the number of entries, including not-yet-swept stale ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CacheKey derives the deterministic cache key from a request. All
// semantic fields participate and stop order is significant: the same
// stops in a different order is a different key.
func CacheKey(req Request) string {
	var b strings.Builder

	writePoint := func(lat, lon float64) {
		b.WriteString(strconv.FormatFloat(lat, 'f', -1, 64))
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(lon, 'f', -1, 64))
	}

	writePoint(req.Origin.Lat, req.Origin.Lon)
	b.WriteByte('-')
	writePoint(req.Destination.Lat, req.Destination.Lon)
	b.WriteByte('-')
	for i, stop := range req.Stops {
		if i > 0 {
			b.WriteByte('|')
		}
		writePoint(stop.Lat, stop.Lon)
	}
	b.WriteByte('-')
	b.WriteString(req.VehicleType)
	b.WriteByte('-')
	b.WriteString(string(req.Priority))
	b.WriteByte('-')
	b.WriteString(strconv.FormatFloat(req.PayloadKG, 'f', -1, 64))
	b.WriteByte('-')
	b.WriteString(strconv.Itoa(req.MaxAlternatives))

	return b.String()
}
