package feed

import (
	"context"
	"time"

	"github.com/rustyeddy/stockdash/market"
)

// Mock returns controllable fixed data for development and testing.
type Mock struct {
	Candles []market.Candle
	Err     error

	// Calls counts History invocations, useful for cache tests.
	Calls int
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) History(_ context.Context, _ string, start, end time.Time) ([]market.Candle, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	candles := market.Trim(m.Candles, start, end)
	if len(candles) == 0 {
		return nil, ErrNoData
	}
	return candles, nil
}

// GenerateCandles builds count ascending daily bars drifting gently around
// basePrice. Weekends are skipped like real daily data.
func GenerateCandles(basePrice float64, count int) []market.Candle {
	candles := make([]market.Candle, 0, count)
	// Start far enough back that weekday-only bars still reach count.
	day := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -(count/5*7 + 14))
	for len(candles) < count {
		if day.Weekday() != time.Saturday && day.Weekday() != time.Sunday {
			p := basePrice * (1 + float64(len(candles)-count/2)*0.001)
			candles = append(candles, market.Candle{
				Open:   p * 0.999,
				High:   p * 1.005,
				Low:    p * 0.995,
				Close:  p,
				Time:   day,
				Volume: 1000000,
			})
		}
		day = day.AddDate(0, 0, 1)
	}
	return candles
}
