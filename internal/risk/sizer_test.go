package risk

import (
	"math"
	"testing"

	"futures-risk-lab/internal/domain"
)

func newTestSizer() *VolatilityTargetSizer {
	return NewVolatilityTargetSizer(domain.SizerConfig{
		TargetVol:     0.10,
		Lookback:      20,
		Annualization: 252,
		MaxLeverage:   2.0,
		ContractSize:  5.0,
		MinSize:       1,
	})
}

// Golden scenario: the 21-close series yields annVol ~= 0.51435, so
// exposure = 0.10 / 0.51435 ~= 0.19442, notional = 19442.03, and with
// contract notional 500 the size floors to 38.
func TestSizer_Golden(t *testing.T) {
	s := newTestSizer()

	size := s.Size(100, 100000, goldenCloses)
	if size != 38 {
		t.Errorf("size = %d, want 38", size)
	}
}

func TestSizer_Guards(t *testing.T) {
	s := newTestSizer()

	tests := []struct {
		name   string
		price  float64
		equity float64
		annVol float64
	}{
		{"zero price", 0, 100000, 0.2},
		{"negative price", -5, 100000, 0.2},
		{"zero vol", 100, 100000, 0},
		{"negative vol", 100, 100000, -0.1},
		{"nan vol", 100, 100000, math.NaN()},
		{"zero equity", 100, 0, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.SizeWithVol(tt.price, tt.equity, tt.annVol); got != 0 {
				t.Errorf("size = %d, want 0", got)
			}
		})
	}
}

func TestSizer_InsufficientHistoryIsZero(t *testing.T) {
	s := newTestSizer()

	if got := s.Size(100, 100000, goldenCloses[:10]); got != 0 {
		t.Errorf("size = %d, want 0 with short history", got)
	}
}

// Higher realized volatility never increases exposure.
func TestSizer_MonotoneInVol(t *testing.T) {
	s := newTestSizer()

	prev := math.MaxInt64
	for _, vol := range []float64{0.01, 0.05, 0.10, 0.20, 0.50, 1.0, 5.0} {
		size := s.SizeWithVol(100, 100000, vol)
		if size > prev {
			t.Fatalf("size increased with vol: %d > %d at vol %v", size, prev, vol)
		}
		prev = size
	}
}

// The leverage cap binds when volatility collapses: at vol 0.01 the raw
// exposure would be 10x, but sizing must not exceed max_leverage * equity.
func TestSizer_LeverageCap(t *testing.T) {
	s := newTestSizer()

	size := s.SizeWithVol(100, 100000, 0.01)

	// 2.0 * 100000 / (100 * 5) = 400 contracts at the cap.
	if size != 400 {
		t.Errorf("size = %d, want 400 (capped)", size)
	}

	notional := float64(size) * 100 * 5
	if notional > 2.0*100000 {
		t.Errorf("notional %v exceeds leverage cap", notional)
	}
}

func TestSizer_MinSize(t *testing.T) {
	cfg := domain.SizerConfig{
		TargetVol:     0.10,
		Lookback:      20,
		Annualization: 252,
		MaxLeverage:   2.0,
		ContractSize:  5.0,
		MinSize:       5,
	}
	s := NewVolatilityTargetSizer(cfg)

	// Sub-minimum results round down to zero, not to MinSize.
	if got := s.SizeWithVol(10000, 10000, 0.5); got != 0 {
		t.Errorf("size = %d, want 0 below min size", got)
	}
}

func TestSizer_ZeroContractNotional(t *testing.T) {
	cfg := newTestSizer().Config()
	cfg.ContractSize = 0
	s := NewVolatilityTargetSizer(cfg)

	if got := s.SizeWithVol(100, 100000, 0.2); got != 0 {
		t.Errorf("size = %d, want 0 with zero contract size", got)
	}
}
