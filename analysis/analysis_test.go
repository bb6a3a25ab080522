package analysis

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/stockdash/cache"
	"github.com/rustyeddy/stockdash/feed"
	"github.com/rustyeddy/stockdash/journal"
	"github.com/rustyeddy/stockdash/market"
)

type memJournal struct {
	journal.Noop
	recs []journal.FetchRecord
}

func (m *memJournal) RecordFetch(rec journal.FetchRecord) error {
	m.recs = append(m.recs, rec)
	return nil
}

func testCandles(n int) []market.Candle {
	candles := make([]market.Candle, n)
	for i := range candles {
		candles[i] = market.Candle{
			Open:   100 + float64(i),
			High:   101 + float64(i),
			Low:    99 + float64(i),
			Close:  100.5 + float64(i),
			Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Volume: 1000,
		}
	}
	return candles
}

func testRange(n int) (time.Time, time.Time) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, n-1)
}

func TestAnalyze(t *testing.T) {
	mock := &feed.Mock{Candles: testCandles(60)}
	jour := &memJournal{}
	svc := NewService(mock, cache.New(time.Minute), jour)

	start, end := testRange(60)
	report, err := svc.Analyze(context.Background(), Params{
		Symbol: "aapl",
		Start:  start,
		End:    end,
	})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", report.Symbol)
	assert.Len(t, report.Dates, 60)
	assert.Len(t, report.Close, 60)
	assert.Equal(t, "2024-01-01", report.Dates[0])

	// Defaults applied.
	assert.Equal(t, DefaultShortWindow, report.ShortWindow)
	assert.Equal(t, DefaultLongWindow, report.LongWindow)
	assert.Equal(t, DefaultBollK, report.BollK)

	// Derived series are aligned and defined only at the tail.
	require.Len(t, report.SMAShort, 60)
	require.Len(t, report.SMALong, 60)
	assert.Equal(t, 60-20+1, report.SMAShort.Defined())
	assert.Equal(t, 60-50+1, report.SMALong.Defined())
	assert.True(t, math.IsNaN(report.SMAShort[18]))
	assert.False(t, math.IsNaN(report.SMAShort[19]))

	require.Len(t, report.BollUpper, 60)
	for i := range report.BollUpper {
		if math.IsNaN(report.BollUpper[i]) {
			continue
		}
		assert.GreaterOrEqual(t, report.BollUpper[i], report.BollLower[i], "index %d", i)
	}

	// The fetch was journaled.
	require.Len(t, jour.recs, 1)
	assert.Equal(t, "AAPL", jour.recs[0].Symbol)
	assert.Equal(t, 60, jour.recs[0].Bars)
	assert.Equal(t, "mock", jour.recs[0].Source)
	assert.NotEmpty(t, jour.recs[0].ID)
}

func TestAnalyzeUsesCache(t *testing.T) {
	mock := &feed.Mock{Candles: testCandles(30)}
	svc := NewService(mock, cache.New(time.Minute), nil)

	start, end := testRange(30)
	p := Params{Symbol: "AAPL", Start: start, End: end}

	first, err := svc.Analyze(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := svc.Analyze(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, 1, mock.Calls)

	// Same input, identical output.
	assert.Equal(t, first.SMAShort, second.SMAShort)
	assert.Equal(t, first.BollUpper, second.BollUpper)

	// A different range is a different cache key.
	p.End = end.AddDate(0, 0, -1)
	third, err := svc.Analyze(context.Background(), p)
	require.NoError(t, err)
	assert.False(t, third.FromCache)
	assert.Equal(t, 2, mock.Calls)
}

func TestAnalyzeNoData(t *testing.T) {
	mock := &feed.Mock{Err: feed.ErrNoData}
	svc := NewService(mock, cache.New(time.Minute), nil)

	start, end := testRange(10)
	_, err := svc.Analyze(context.Background(), Params{Symbol: "NOPE", Start: start, End: end})
	assert.ErrorIs(t, err, feed.ErrNoData)
}

func TestAnalyzeProviderError(t *testing.T) {
	boom := errors.New("connection refused")
	mock := &feed.Mock{Err: boom}
	svc := NewService(mock, cache.New(time.Minute), nil)

	start, end := testRange(10)
	_, err := svc.Analyze(context.Background(), Params{Symbol: "AAPL", Start: start, End: end})
	assert.ErrorIs(t, err, boom)
}

func TestAnalyzeValidation(t *testing.T) {
	svc := NewService(&feed.Mock{}, cache.New(time.Minute), nil)

	start, end := testRange(10)

	_, err := svc.Analyze(context.Background(), Params{Start: start, End: end})
	assert.Error(t, err)

	_, err = svc.Analyze(context.Background(), Params{Symbol: "AAPL", Start: end, End: start})
	assert.Error(t, err)
}

func TestHistory(t *testing.T) {
	mock := &feed.Mock{Candles: testCandles(10)}
	svc := NewService(mock, cache.New(time.Minute), nil)

	start, end := testRange(10)
	candles, err := svc.History(context.Background(), " aapl ", start, end)
	require.NoError(t, err)
	assert.Len(t, candles, 10)
	assert.True(t, market.Ascending(candles))

	// Second call comes from the cache.
	_, err = svc.History(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.Calls)
}
