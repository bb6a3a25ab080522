// Package csvfile loads daily bars from CSV exports, for offline analysis
// and testing without a network data source.
//
// Supported inputs are a plain .csv, an xz-compressed .csv.xz, or a .zip
// archive containing one or more CSV files. The expected column layout is
// the usual daily-history export: Date,Open,High,Low,Close,Volume, matched
// by header name, extra columns ignored.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/xyproto/unzip"

	"github.com/rustyeddy/stockdash/feed"
	"github.com/rustyeddy/stockdash/market"
)

// Load reads all daily bars from path, sorted ascending by date.
func Load(path string) ([]market.Candle, error) {
	var candles []market.Candle
	var err error

	switch {
	case strings.HasSuffix(path, ".zip"):
		candles, err = loadZip(path)
	case strings.HasSuffix(path, ".xz"):
		candles, err = loadXZ(path)
	default:
		candles, err = loadPlain(path)
	}
	if err != nil {
		return nil, err
	}

	market.SortByTime(candles)
	return candles, nil
}

func loadPlain(path string) ([]market.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	candles, err := parseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return candles, nil
}

func loadXZ(path string) ([]market.Candle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := xz.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: open xz: %w", path, err)
	}

	candles, err := parseCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return candles, nil
}

func loadZip(path string) ([]market.Candle, error) {
	dir, err := os.MkdirTemp("", "stockdash-zip")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := unzip.Extract(path, dir); err != nil {
		return nil, fmt.Errorf("%s: extract: %w", path, err)
	}

	var candles []market.Candle
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(strings.ToLower(p), ".csv") {
			return err
		}
		cs, err := loadPlain(p)
		if err != nil {
			return err
		}
		candles = append(candles, cs...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%s: no CSV files in archive", path)
	}
	return candles, nil
}

func parseCSV(r io.Reader) ([]market.Candle, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	dateIdx, ok := col["date"]
	if !ok {
		return nil, fmt.Errorf("missing Date column")
	}
	closeIdx, ok := col["close"]
	if !ok {
		return nil, fmt.Errorf("missing Close column")
	}

	var candles []market.Candle
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		day, err := time.Parse("2006-01-02", row[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: parse date: %w", line, err)
		}

		closeV, ok := field(row, closeIdx)
		if !ok {
			continue // null bar, skip like the providers do
		}

		c := market.Candle{Close: closeV, Time: day.UTC()}
		if i, found := col["open"]; found {
			c.Open, _ = field(row, i)
		}
		if i, found := col["high"]; found {
			c.High, _ = field(row, i)
		}
		if i, found := col["low"]; found {
			c.Low, _ = field(row, i)
		}
		if i, found := col["volume"]; found {
			c.Volume, _ = field(row, i)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

// field parses a numeric cell, reporting false for empty or null markers.
func field(row []string, i int) (float64, bool) {
	if i >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[i])
	if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "nan") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Provider serves History requests from a loaded CSV export.
type Provider struct {
	symbol  string
	candles []market.Candle
}

// Open loads path and returns a Provider answering for the given symbol.
func Open(symbol, path string) (*Provider, error) {
	candles, err := Load(path)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%s: %w", path, feed.ErrNoData)
	}
	return &Provider{symbol: strings.ToUpper(symbol), candles: candles}, nil
}

func (p *Provider) Name() string { return "csv" }

func (p *Provider) History(_ context.Context, symbol string, start, end time.Time) ([]market.Candle, error) {
	if !strings.EqualFold(symbol, p.symbol) {
		return nil, fmt.Errorf("%s: %w", symbol, feed.ErrNoData)
	}
	candles := market.Trim(p.candles, start, end)
	if len(candles) == 0 {
		return nil, feed.ErrNoData
	}
	return candles, nil
}
