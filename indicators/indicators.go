// Package indicators provides rolling-window technical analysis over
// ordered closing-price series.
//
// The batch calculators (SMA, BollingerBands) are pure, stateless
// functions: each returns a Series aligned index-for-index with its input,
// with NaN marking positions that lack enough trailing history. Running a
// calculator twice on the same input yields identical output.
package indicators

import (
	"errors"
	"math"
	"strconv"

	"github.com/rustyeddy/stockdash/market"
)

// ErrInvalidWindow is returned when a window size is not a positive integer.
// Degenerate windows fail fast rather than producing an all-undefined series.
var ErrInvalidWindow = errors.New("window must be a positive integer")

// Series is a derived sequence aligned index-for-index with its source
// series. Undefined positions (insufficient trailing history) hold NaN and
// marshal to JSON null, so chart front-ends skip them.
type Series []float64

// Defined returns the number of non-NaN values in the series.
func (s Series) Defined() int {
	n := 0
	for _, v := range s {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}

// Last returns the most recent defined value, or NaN if there is none.
func (s Series) Last() float64 {
	for i := len(s) - 1; i >= 0; i-- {
		if !math.IsNaN(s[i]) {
			return s[i]
		}
	}
	return math.NaN()
}

func (s Series) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(s)*8+2)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) {
			buf = append(buf, "null"...)
		} else {
			buf = strconv.AppendFloat(buf, v, 'f', -1, 64)
		}
	}
	return append(buf, ']'), nil
}

// undefined returns a series of length n with every position NaN.
func undefined(n int) Series {
	s := make(Series, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

// Indicator computes a single streaming value from closed daily candles.
// It is deterministic and safe to use in live and replay contexts.
type Indicator interface {
	// Name returns a stable identifier like "SMA(20)" or "BOLL(20,2)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closed candle and updates internal state.
	Update(c market.Candle)

	// Ready reports whether the indicator value is meaningful.
	Ready() bool
}
