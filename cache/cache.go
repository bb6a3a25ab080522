// Package cache provides an in-memory TTL cache for provider responses,
// keyed by (symbol, start date, end date). It exists so repeated dashboard
// interactions over the same range don't hit the data provider again.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rustyeddy/stockdash/market"
)

// DefaultTTL bounds how long a provider response is reused.
const DefaultTTL = 15 * time.Minute

// Key builds the cache key for a symbol and date range. Symbols are
// case-insensitive.
func Key(symbol string, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%s",
		strings.ToUpper(symbol), start.Format("2006-01-02"), end.Format("2006-01-02"))
}

type entry struct {
	candles  []market.Candle
	storedAt time.Time
}

// Cache is a mutex-guarded TTL map. The zero value is not usable; call New.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry

	now func() time.Time // injectable for tests
}

// New creates a cache whose entries expire after ttl. A non-positive ttl
// selects DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the cached candles for key, or false on a miss or an expired
// entry. Expired entries are dropped on access.
func (c *Cache) Get(key string) ([]market.Candle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.candles, true
}

// Set stores candles under key, resetting its TTL.
func (c *Cache) Set(key string, candles []market.Candle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{candles: candles, storedAt: c.now()}
}

// Invalidate removes key if present.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
