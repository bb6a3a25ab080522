package indicators

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Bands holds the Bollinger Band series: the rolling mean (Mid) and the
// mean plus/minus K rolling standard deviations (Upper, Lower). All three
// are aligned with the source series.
type Bands struct {
	Upper Series
	Mid   Series
	Lower Series
}

// BollingerBands computes a volatility envelope over closes: at each
// position the trailing rolling mean over window observations, plus and
// minus k times the trailing rolling standard deviation over the same
// window.
//
// The standard deviation uses the sample convention (divide by window-1),
// matching the rolling-statistics libraries this mirrors. A window of 1
// therefore yields a defined Mid but undefined bands, since the sample
// deviation of a single observation is undefined. The undefined-prefix and
// degenerate-window rules otherwise match SMA.
func BollingerBands(closes []float64, window int, k float64) (Bands, error) {
	if window <= 0 {
		return Bands{}, fmt.Errorf("%w: got %d", ErrInvalidWindow, window)
	}

	n := len(closes)
	b := Bands{
		Upper: undefined(n),
		Mid:   rollingMean(closes, window),
		Lower: undefined(n),
	}
	if window > n {
		return b, nil
	}

	for i := window - 1; i < n; i++ {
		// Sample standard deviation; NaN when window == 1, which keeps
		// the bands undefined there.
		std := stat.StdDev(closes[i-window+1:i+1], nil)
		b.Upper[i] = b.Mid[i] + k*std
		b.Lower[i] = b.Mid[i] - k*std
	}
	return b, nil
}
