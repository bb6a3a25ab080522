// Package feed defines the market data provider boundary: anything that
// can supply historical daily bars for a ticker symbol over a date range.
package feed

import (
	"context"
	"errors"
	"time"

	"github.com/rustyeddy/stockdash/market"
)

// ErrNoData indicates the provider returned an empty or missing series for
// the requested symbol and range (unknown ticker, or no trading days in
// range). Callers surface this as a user-visible warning, never a crash,
// and must not run the calculators on it.
var ErrNoData = errors.New("no data available")

// Provider supplies historical daily bars for a symbol.
//
// History returns candles ordered ascending by date, covering at most
// [start, end]. Non-trading days are simply absent. An empty result is
// reported as ErrNoData.
type Provider interface {
	History(ctx context.Context, symbol string, start, end time.Time) ([]market.Candle, error)
	Name() string
}
