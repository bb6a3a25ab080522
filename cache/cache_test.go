package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockdash/market"
)

func TestKey(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "AAPL:2024-01-02:2024-03-04", Key("AAPL", start, end))
	// Symbols are case-insensitive.
	assert.Equal(t, Key("AAPL", start, end), Key("aapl", start, end))
}

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.Get("k")
	assert.False(t, ok)

	candles := []market.Candle{{Close: 100}}
	c.Set("k", candles)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, candles, got)
	assert.Equal(t, 1, c.Len())
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)

	clock := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("k", []market.Candle{{Close: 100}})

	clock = clock.Add(59 * time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	clock = clock.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)

	// Expired entries are dropped on access.
	assert.Equal(t, 0, c.Len())
}

func TestSetResetsTTL(t *testing.T) {
	c := New(time.Minute)

	clock := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("k", []market.Candle{{Close: 100}})
	clock = clock.Add(50 * time.Second)
	c.Set("k", []market.Candle{{Close: 101}})
	clock = clock.Add(50 * time.Second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 101.0, got[0].Close)
}

func TestInvalidate(t *testing.T) {
	c := New(0)
	c.Set("k", nil)
	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)

	// Invalidating a missing key is a no-op.
	c.Invalidate("missing")
}
