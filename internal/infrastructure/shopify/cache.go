package shopify

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// DefaultCacheTTL bounds how long a cached upstream read stays valid.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	data     json.RawMessage
	storedAt time.Time
}

// ResponseCache memoizes successful GET responses from the upstream
// API for a bounded time. Only GET participates; mutating methods
// always bypass. Entries are never proactively evicted, only judged
// stale on the next read or superseded by the next read-through miss.
//
// Keys are the raw method + endpoint string with no query
// normalization: two GETs whose query parameters differ only in
// ordering populate distinct entries. That is current behavior,
// possibly unintended, and is documented rather than changed.
type ResponseCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

// NewResponseCache creates a cache with the given TTL, using the wall
// clock. A non-positive TTL falls back to DefaultCacheTTL.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	return NewResponseCacheWithClock(ttl, time.Now)
}

// NewResponseCacheWithClock creates a cache with an injected clock so
// TTL behavior is deterministic under test.
func NewResponseCacheWithClock(ttl time.Duration, now func() time.Time) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResponseCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached response for the endpoint if it is still
// within the TTL. Non-GET methods never hit.
func (c *ResponseCache) Get(endpoint, method string) (json.RawMessage, bool) {
	if method != http.MethodGet {
		return nil, false
	}

	c.mu.RLock()
	entry, ok := c.entries[cacheKey(method, endpoint)]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.storedAt) >= c.ttl {
		cacheMisses.Inc()
		return nil, false
	}
	cacheHits.Inc()
	return entry.data, true
}

// Set stores a successful response. Non-GET methods are ignored;
// errors are never cached by callers.
func (c *ResponseCache) Set(endpoint, method string, data json.RawMessage) {
	if method != http.MethodGet {
		return
	}

	c.mu.Lock()
	c.entries[cacheKey(method, endpoint)] = cacheEntry{data: data, storedAt: c.now()}
	c.mu.Unlock()
}

// Len reports the number of entries, stale ones included.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cacheKey(method, endpoint string) string {
	return method + " " + endpoint
}
