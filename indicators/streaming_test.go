package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockdash/market"
)

func candlesFromCloses(closes ...float64) []market.Candle {
	candles := make([]market.Candle, len(closes))
	for i, c := range closes {
		candles[i] = market.Candle{Close: c}
	}
	return candles
}

func TestStreamingMA(t *testing.T) {
	ma := NewMA(3)
	assert.Equal(t, "SMA(3)", ma.Name())
	assert.Equal(t, 3, ma.Warmup())

	closes := []float64{10, 11, 12, 13, 14}
	batch, err := SMA(closes, 3)
	require.NoError(t, err)

	for i, c := range candlesFromCloses(closes...) {
		ma.Update(c)
		if i < 2 {
			assert.False(t, ma.Ready())
			assert.Equal(t, 0.0, ma.Value())
			continue
		}
		assert.True(t, ma.Ready())
		assert.InDelta(t, batch[i], ma.Value(), 1e-9, "index %d", i)
	}
}

func TestStreamingMAReset(t *testing.T) {
	ma := NewMA(2)
	for _, c := range candlesFromCloses(1, 2, 3) {
		ma.Update(c)
	}
	require.True(t, ma.Ready())

	ma.Reset()
	assert.False(t, ma.Ready())
}

func TestStreamingBollinger(t *testing.T) {
	boll := NewBollinger(3, 2)
	assert.Equal(t, "BOLL(3,2)", boll.Name())

	closes := []float64{10, 11, 12, 13, 14}
	batch, err := BollingerBands(closes, 3, 2)
	require.NoError(t, err)

	for i, c := range candlesFromCloses(closes...) {
		boll.Update(c)
		if i < 2 {
			assert.False(t, boll.Ready())
			continue
		}
		assert.True(t, boll.Ready())
		assert.InDelta(t, batch.Mid[i], boll.Mid(), 1e-9, "index %d", i)
		assert.InDelta(t, batch.Upper[i], boll.Upper(), 1e-9, "index %d", i)
		assert.InDelta(t, batch.Lower[i], boll.Lower(), 1e-9, "index %d", i)
	}
}

func TestStreamingBollingerConstant(t *testing.T) {
	boll := NewBollinger(2, 2)
	for _, c := range candlesFromCloses(5, 5, 5, 5) {
		boll.Update(c)
	}

	require.True(t, boll.Ready())
	assert.InDelta(t, 5, boll.Upper(), 1e-9)
	assert.InDelta(t, 5, boll.Lower(), 1e-9)
}

func TestIndicatorInterface(t *testing.T) {
	// Both streaming indicators satisfy the Indicator contract.
	var _ Indicator = NewMA(20)
	var _ Indicator = NewBollinger(20, 2)
}
