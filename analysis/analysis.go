// Package analysis orchestrates fetch-on-demand stock analysis: resolve a
// (symbol, date range) request against the cache or the data provider, run
// the indicator calculators over the close series, and hand back aligned
// sequences for the presentation layer.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/stockdash/cache"
	"github.com/rustyeddy/stockdash/feed"
	"github.com/rustyeddy/stockdash/indicators"
	"github.com/rustyeddy/stockdash/journal"
	"github.com/rustyeddy/stockdash/market"
	"github.com/rustyeddy/stockdash/pkg/id"
)

// Default indicator parameters, matching the usual dashboard presets.
const (
	DefaultShortWindow = 20
	DefaultLongWindow  = 50
	DefaultBollWindow  = 20
	DefaultBollK       = 2.0
)

// Params describes one analysis request. Zero windows and k select the
// defaults above.
type Params struct {
	Symbol string
	Start  time.Time
	End    time.Time

	ShortWindow int
	LongWindow  int
	BollWindow  int
	BollK       float64
}

func (p *Params) setDefaults() {
	p.Symbol = strings.ToUpper(strings.TrimSpace(p.Symbol))
	if p.ShortWindow == 0 {
		p.ShortWindow = DefaultShortWindow
	}
	if p.LongWindow == 0 {
		p.LongWindow = DefaultLongWindow
	}
	if p.BollWindow == 0 {
		p.BollWindow = DefaultBollWindow
	}
	if p.BollK == 0 {
		p.BollK = DefaultBollK
	}
}

func (p Params) validate() error {
	if p.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if p.End.Before(p.Start) {
		return fmt.Errorf("end date %s is before start date %s",
			p.End.Format("2006-01-02"), p.Start.Format("2006-01-02"))
	}
	return nil
}

// Report holds the price series and all derived series for one request,
// aligned index-for-index. Undefined positions marshal to JSON null.
type Report struct {
	Symbol string   `json:"symbol"`
	Dates  []string `json:"dates"`

	Close  []float64 `json:"close"`
	Open   []float64 `json:"open"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Volume []float64 `json:"volume"`

	ShortWindow int               `json:"short_window"`
	LongWindow  int               `json:"long_window"`
	SMAShort    indicators.Series `json:"sma_short"`
	SMALong     indicators.Series `json:"sma_long"`

	BollWindow int               `json:"boll_window"`
	BollK      float64           `json:"boll_k"`
	BollUpper  indicators.Series `json:"boll_upper"`
	BollMid    indicators.Series `json:"boll_mid"`
	BollLower  indicators.Series `json:"boll_lower"`

	FromCache bool `json:"from_cache"`
}

// Service answers analysis and raw-history requests. It is safe for
// concurrent use; the calculators are pure and the cache and journal guard
// their own state.
type Service struct {
	provider feed.Provider
	cache    *cache.Cache
	journal  journal.Journal
}

// NewService wires a provider, a response cache, and a fetch journal.
// A nil journal disables journaling.
func NewService(p feed.Provider, c *cache.Cache, j journal.Journal) *Service {
	if j == nil {
		j = journal.Noop{}
	}
	return &Service{provider: p, cache: c, journal: j}
}

// Analyze fetches the price series for the request (through the cache) and
// computes both moving averages and the Bollinger Bands over it.
//
// An empty provider result surfaces as feed.ErrNoData; the calculators are
// never invoked without data.
func (s *Service) Analyze(ctx context.Context, p Params) (*Report, error) {
	p.setDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}

	candles, fromCache, err := s.history(ctx, p.Symbol, p.Start, p.End)
	if err != nil {
		return nil, err
	}

	closes := market.Closes(candles)

	smaShort, err := indicators.SMA(closes, p.ShortWindow)
	if err != nil {
		return nil, fmt.Errorf("short SMA: %w", err)
	}
	smaLong, err := indicators.SMA(closes, p.LongWindow)
	if err != nil {
		return nil, fmt.Errorf("long SMA: %w", err)
	}
	bands, err := indicators.BollingerBands(closes, p.BollWindow, p.BollK)
	if err != nil {
		return nil, fmt.Errorf("bollinger: %w", err)
	}

	r := &Report{
		Symbol:      p.Symbol,
		Dates:       make([]string, len(candles)),
		Close:       closes,
		Open:        make([]float64, len(candles)),
		High:        make([]float64, len(candles)),
		Low:         make([]float64, len(candles)),
		Volume:      make([]float64, len(candles)),
		ShortWindow: p.ShortWindow,
		LongWindow:  p.LongWindow,
		SMAShort:    smaShort,
		SMALong:     smaLong,
		BollWindow:  p.BollWindow,
		BollK:       p.BollK,
		BollUpper:   bands.Upper,
		BollMid:     bands.Mid,
		BollLower:   bands.Lower,
		FromCache:   fromCache,
	}
	for i, c := range candles {
		r.Dates[i] = c.Date()
		r.Open[i] = c.Open
		r.High[i] = c.High
		r.Low[i] = c.Low
		r.Volume[i] = c.Volume
	}
	return r, nil
}

// History returns the raw bars for a range, through the same cache the
// analysis path uses.
func (s *Service) History(ctx context.Context, symbol string, start, end time.Time) ([]market.Candle, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	candles, _, err := s.history(ctx, symbol, start, end)
	return candles, err
}

func (s *Service) history(ctx context.Context, symbol string, start, end time.Time) ([]market.Candle, bool, error) {
	key := cache.Key(symbol, start, end)
	if candles, ok := s.cache.Get(key); ok {
		log.WithField("key", key).Debug("cache hit")
		return candles, true, nil
	}

	began := time.Now()
	candles, err := s.provider.History(ctx, symbol, start, end)
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if len(candles) == 0 {
		return nil, false, fmt.Errorf("fetch %s: %w", symbol, feed.ErrNoData)
	}
	if !market.Ascending(candles) {
		market.SortByTime(candles)
	}

	s.cache.Set(key, candles)

	rec := journal.FetchRecord{
		ID:        id.New(),
		Symbol:    symbol,
		Start:     start,
		End:       end,
		Bars:      len(candles),
		Source:    s.provider.Name(),
		Duration:  time.Since(began),
		FetchedAt: time.Now().UTC(),
	}
	if err := s.journal.RecordFetch(rec); err != nil {
		// Journaling is observability, not correctness.
		log.WithError(err).Warn("record fetch")
	}

	log.WithFields(log.Fields{
		"symbol": symbol,
		"bars":   len(candles),
		"source": s.provider.Name(),
	}).Info("fetched history")

	return candles, false, nil
}
