package indicator

import (
	"math"
	"testing"
)

func TestSMA_Warmup(t *testing.T) {
	s := NewSMA(3)

	s.Push(10)
	if _, ok := s.Value(); ok {
		t.Error("value defined after 1 of 3 pushes")
	}
	s.Push(20)
	if _, ok := s.Value(); ok {
		t.Error("value defined after 2 of 3 pushes")
	}
	s.Push(30)
	v, ok := s.Value()
	if !ok {
		t.Fatal("value undefined after full window")
	}
	if v != 20 {
		t.Errorf("sma = %v, want 20", v)
	}
}

func TestSMA_Rolls(t *testing.T) {
	s := NewSMA(3)
	for _, v := range []float64{10, 20, 30, 40} {
		s.Push(v)
	}

	v, ok := s.Value()
	if !ok {
		t.Fatal("value undefined")
	}
	if v != 30 {
		t.Errorf("sma = %v, want 30 (oldest value evicted)", v)
	}
}

func TestSMA_PeriodOne(t *testing.T) {
	s := NewSMA(1)
	s.Push(7)
	if v, ok := s.Value(); !ok || v != 7 {
		t.Errorf("sma = %v ok=%v, want 7 true", v, ok)
	}
	s.Push(9)
	if v, _ := s.Value(); v != 9 {
		t.Errorf("sma = %v, want 9", v)
	}
}

func TestSMA_LongSeries(t *testing.T) {
	// Compare the incremental result against a direct window sum.
	series := make([]float64, 100)
	for i := range series {
		series[i] = math.Sin(float64(i)) * 50
	}

	const period = 20
	s := NewSMA(period)
	for i, v := range series {
		s.Push(v)
		if i < period-1 {
			continue
		}
		var sum float64
		for _, w := range series[i-period+1 : i+1] {
			sum += w
		}
		want := sum / period
		got, ok := s.Value()
		if !ok {
			t.Fatalf("value undefined at index %d", i)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("sma at index %d = %v, want %v", i, got, want)
		}
	}
}

func TestSMA_InvalidPeriod(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive period")
		}
	}()
	NewSMA(0)
}

func TestCrossover_Basic(t *testing.T) {
	c := NewCrossover()

	// First update only establishes the side.
	if got := c.Update(9, 10); got != 0 {
		t.Errorf("priming update signaled %d", got)
	}
	if got := c.Update(11, 10); got != 1 {
		t.Errorf("upward cross = %d, want 1", got)
	}
	if got := c.Update(12, 10); got != 0 {
		t.Errorf("staying above signaled %d", got)
	}
	if got := c.Update(8, 10); got != -1 {
		t.Errorf("downward cross = %d, want -1", got)
	}
}

func TestCrossover_TouchingZero(t *testing.T) {
	// Touching zero and returning to the same side does not signal.
	c := NewCrossover()
	c.Update(11, 10)
	if got := c.Update(10, 10); got != 0 {
		t.Errorf("touch = %d, want 0", got)
	}
	if got := c.Update(12, 10); got != 0 {
		t.Errorf("return to same side = %d, want 0", got)
	}

	// Passing through zero over two bars still signals the cross.
	c = NewCrossover()
	c.Update(11, 10)
	c.Update(10, 10)
	if got := c.Update(8, 10); got != -1 {
		t.Errorf("cross through zero = %d, want -1", got)
	}
}
