// Package indicator provides the streaming indicators the strategies build
// on: rolling simple moving averages and a crossover detector. All state is
// incremental; each bar is pushed exactly once.
package indicator

// SMA is a rolling simple moving average over a fixed window, fed one value
// at a time. Value is undefined until the window has filled.
type SMA struct {
	period int
	buf    []float64
	next   int
	count  int
	sum    float64
}

// NewSMA creates a moving average over the given period. Period must be
// positive.
func NewSMA(period int) *SMA {
	if period <= 0 {
		panic("indicator: SMA period must be positive")
	}
	return &SMA{
		period: period,
		buf:    make([]float64, period),
	}
}

// Period returns the configured window length.
func (s *SMA) Period() int {
	return s.period
}

// Push feeds the next value into the window.
func (s *SMA) Push(v float64) {
	if s.count == s.period {
		s.sum -= s.buf[s.next]
	} else {
		s.count++
	}
	s.buf[s.next] = v
	s.sum += v
	s.next = (s.next + 1) % s.period
}

// Value returns the current average and whether the window has filled.
func (s *SMA) Value() (float64, bool) {
	if s.count < s.period {
		return 0, false
	}
	return s.sum / float64(s.period), true
}

// Ready reports whether the window has filled.
func (s *SMA) Ready() bool {
	return s.count == s.period
}
