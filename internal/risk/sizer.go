package risk

import (
	"math"

	"futures-risk-lab/internal/domain"
)

// VolatilityTargetSizer converts target volatility, realized volatility and
// account equity into a contract count, subject to a leverage cap.
//
// The sizer returns magnitude only; direction is decided upstream. Every
// guard degrades to size zero rather than failing: an unsizable order is a
// skipped trade, never an aborted run.
type VolatilityTargetSizer struct {
	cfg domain.SizerConfig
}

// NewVolatilityTargetSizer creates a sizer with the given configuration.
func NewVolatilityTargetSizer(cfg domain.SizerConfig) *VolatilityTargetSizer {
	return &VolatilityTargetSizer{cfg: cfg}
}

// Config returns the sizer's immutable configuration.
func (s *VolatilityTargetSizer) Config() domain.SizerConfig {
	return s.cfg
}

// Size computes the contract count from the trailing closes.
// Returns 0 when the volatility estimate is unavailable.
func (s *VolatilityTargetSizer) Size(price, equity float64, closes []float64) int {
	annVol, ok := AnnualizedVol(closes, s.cfg.Lookback, s.cfg.Annualization)
	if !ok {
		return 0
	}
	return s.SizeWithVol(price, equity, annVol)
}

// SizeWithVol computes the contract count from a precomputed annualized
// volatility:
//
//	exposure = clamp(target_vol / ann_vol, 0, max_leverage)
//	size     = floor(equity * exposure / (price * contract_size))
//
// The cap bounds tail risk when volatility collapses toward zero, which
// would otherwise imply unbounded exposure. Sub-minimum sizes round down
// to zero; no fractional contracts.
func (s *VolatilityTargetSizer) SizeWithVol(price, equity, annVol float64) int {
	if price <= 0 {
		return 0
	}
	if annVol <= 0 || math.IsNaN(annVol) {
		return 0
	}

	rawExposure := s.cfg.TargetVol / annVol
	exposure := math.Max(0, math.Min(s.cfg.MaxLeverage, rawExposure))

	targetNotional := equity * exposure

	contractNotional := price * s.cfg.ContractSize
	if contractNotional <= 0 {
		return 0
	}

	size := int(math.Floor(targetNotional / contractNotional))
	if size < s.cfg.MinSize {
		return 0
	}
	return size
}
