package market

import "time"

// Candle represents OHLC (Open, High, Low, Close) data for one trading day.
//
// Daily bars are timezone-naive calendar days; the embedded time carries
// only the date portion as reported by the data provider.
type Candle struct {
	Open   float64
	High   float64
	Low    float64
	Close  float64
	time.Time
	Volume float64
}

// Date returns the candle's calendar day formatted as YYYY-MM-DD.
func (c Candle) Date() string {
	return c.Format("2006-01-02")
}
