// Package market defines the price data model shared by the data feed,
// the indicator calculators, and the HTTP presentation layer.
package market

import (
	"sort"
	"time"
)

// Closes extracts the closing prices from candles, preserving order.
func Closes(candles []Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// SortByTime orders candles ascending by time. Providers are expected to
// return ascending data already; this restores the invariant when they don't.
func SortByTime(candles []Candle) {
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Before(candles[j].Time)
	})
}

// Ascending reports whether candles are strictly ordered ascending by time.
// Gaps are fine (non-trading days are simply absent), duplicates are not.
func Ascending(candles []Candle) bool {
	for i := 1; i < len(candles); i++ {
		if !candles[i-1].Before(candles[i].Time) {
			return false
		}
	}
	return true
}

// Trim returns the candles whose time falls within [start, end] inclusive.
// The input must be ascending; the result shares the input's backing array.
func Trim(candles []Candle, start, end time.Time) []Candle {
	lo := 0
	for lo < len(candles) && candles[lo].Before(start) {
		lo++
	}
	hi := len(candles)
	for hi > lo && candles[hi-1].After(end) {
		hi--
	}
	return candles[lo:hi]
}
