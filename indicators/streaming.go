package indicators

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/rustyeddy/stockdash/market"
)

// SimpleMA is a streaming Simple Moving Average indicator. It produces the
// same values as the batch SMA at each position once warmed up.
type SimpleMA struct {
	window int
	closes []float64
}

// NewMA creates a streaming Simple Moving Average with the given window.
func NewMA(window int) *SimpleMA {
	return &SimpleMA{
		window: window,
		closes: make([]float64, 0, window),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.window)
}

func (m *SimpleMA) Warmup() int {
	return m.window
}

func (m *SimpleMA) Reset() {
	m.closes = m.closes[:0]
}

func (m *SimpleMA) Update(c market.Candle) {
	m.closes = append(m.closes, c.Close)
	// Keep only the last 'window' closes
	if len(m.closes) > m.window {
		m.closes = m.closes[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.closes) >= m.window
}

func (m *SimpleMA) Value() float64 {
	if !m.Ready() {
		return 0
	}

	sum := 0.0
	for _, c := range m.closes {
		sum += c
	}
	return sum / float64(len(m.closes))
}

// Bollinger is a streaming Bollinger Band indicator using the same sample
// standard deviation convention as the batch BollingerBands.
type Bollinger struct {
	window int
	k      float64
	closes []float64
}

// NewBollinger creates a streaming Bollinger Band indicator with the given
// window and standard-deviation multiplier.
func NewBollinger(window int, k float64) *Bollinger {
	return &Bollinger{
		window: window,
		k:      k,
		closes: make([]float64, 0, window),
	}
}

func (b *Bollinger) Name() string {
	return fmt.Sprintf("BOLL(%d,%g)", b.window, b.k)
}

func (b *Bollinger) Warmup() int {
	return b.window
}

func (b *Bollinger) Reset() {
	b.closes = b.closes[:0]
}

func (b *Bollinger) Update(c market.Candle) {
	b.closes = append(b.closes, c.Close)
	if len(b.closes) > b.window {
		b.closes = b.closes[1:]
	}
}

func (b *Bollinger) Ready() bool {
	return len(b.closes) >= b.window
}

// Mid returns the current rolling mean, or 0 before warmup.
func (b *Bollinger) Mid() float64 {
	if !b.Ready() {
		return 0
	}

	sum := 0.0
	for _, c := range b.closes {
		sum += c
	}
	return sum / float64(len(b.closes))
}

// Upper returns the current upper band, or 0 before warmup.
func (b *Bollinger) Upper() float64 {
	if !b.Ready() {
		return 0
	}
	return b.Mid() + b.k*stat.StdDev(b.closes, nil)
}

// Lower returns the current lower band, or 0 before warmup.
func (b *Bollinger) Lower() float64 {
	if !b.Ready() {
		return 0
	}
	return b.Mid() - b.k*stat.StdDev(b.closes, nil)
}
