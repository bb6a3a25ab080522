// Package yahoo implements the feed.Provider interface against the Yahoo
// Finance v8 chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/rustyeddy/stockdash/feed"
	"github.com/rustyeddy/stockdash/market"
)

// DefaultBaseURL is the public Yahoo Finance query endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

const defaultTimeout = 30 * time.Second

// Client fetches historical daily bars from Yahoo Finance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries uint64
}

// NewClient creates a Yahoo Finance client. An empty baseURL selects the
// public endpoint; a zero timeout selects 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: 3,
	}
}

func (c *Client) Name() string { return "yahoo" }

// chartResponse is the response structure of the Yahoo chart API. Quote
// arrays use pointers because Yahoo reports holidays as nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// History fetches daily bars for symbol between start and end inclusive.
// Transient failures (network errors, 5xx, 429) are retried with
// exponential backoff; anything else fails immediately.
func (c *Client) History(ctx context.Context, symbol string, start, end time.Time) ([]market.Candle, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end %s is before start %s", end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	params := url.Values{}
	params.Set("interval", "1d")
	params.Set("period1", fmt.Sprintf("%d", start.Unix()))
	// period2 is exclusive; push it past the end day so that day's bar is
	// included.
	params.Set("period2", fmt.Sprintf("%d", end.Add(24*time.Hour).Unix()))
	params.Set("events", "history")

	apiURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	var candles []market.Candle
	op := func() error {
		var err error
		candles, err = c.fetchChart(ctx, apiURL)
		return err
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}

	candles = market.Trim(candles, start, end)
	if len(candles) == 0 {
		return nil, fmt.Errorf("%s %s..%s: %w", symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), feed.ErrNoData)
	}
	return candles, nil
}

func (c *Client) fetchChart(ctx context.Context, apiURL string) ([]market.Candle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	// Yahoo rejects requests without a browser-ish user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("yahoo fetch failed, may retry")
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(feed.ErrNoData)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body)))
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("yahoo decode: %w", err))
	}
	if chart.Chart.Error != nil {
		return nil, backoff.Permanent(fmt.Errorf("yahoo api error %s: %s: %w",
			chart.Chart.Error.Code, chart.Chart.Error.Description, feed.ErrNoData))
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, backoff.Permanent(feed.ErrNoData)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	candles := make([]market.Candle, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue // null bar (holiday etc.)
		}
		candles = append(candles, market.Candle{
			Open:   deref(quote.Open, i),
			High:   deref(quote.High, i),
			Low:    deref(quote.Low, i),
			Close:  *quote.Close[i],
			Time:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Volume: deref(quote.Volume, i),
		})
	}

	market.SortByTime(candles)
	return candles, nil
}

func deref(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}
