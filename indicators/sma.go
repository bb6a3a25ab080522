package indicators

import "fmt"

// SMA computes the trailing simple moving average of closes over the given
// window: the value at position i is the arithmetic mean of
// closes[i-window+1 .. i], NaN while fewer than window observations exist.
//
// A window of 1 reproduces the input exactly. A window larger than the
// series leaves every position undefined. An empty input yields an empty
// series. Non-positive windows return ErrInvalidWindow.
func SMA(closes []float64, window int) (Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}
	return rollingMean(closes, window), nil
}

// rollingMean is the shared trailing-mean primitive behind both SMA and the
// Bollinger middle band. It never looks forward: each value is the mean of
// the window ending at that position.
func rollingMean(closes []float64, window int) Series {
	out := undefined(len(closes))
	if window > len(closes) {
		return out
	}

	sum := 0.0
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}
