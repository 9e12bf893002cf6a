package strategy

import (
	"errors"

	"futures-risk-lab/internal/domain"
)

// Factory errors
var (
	ErrUnknownStrategyType = errors.New("unknown strategy type")
	ErrInvalidFastPeriod   = errors.New("fast period must be positive")
	ErrInvalidSlowPeriod   = errors.New("slow period must be greater than fast period")
)

// FromConfig creates a Strategy from domain.StrategyConfig.
// Validates required parameters per strategy type.
func FromConfig(cfg domain.StrategyConfig) (Strategy, error) {
	if cfg.FastPeriod <= 0 {
		return nil, ErrInvalidFastPeriod
	}
	if cfg.SlowPeriod <= cfg.FastPeriod {
		return nil, ErrInvalidSlowPeriod
	}

	switch cfg.StrategyType {
	case domain.StrategyTypeSMACross:
		return NewSMACrossStrategy(cfg.FastPeriod, cfg.SlowPeriod), nil
	case domain.StrategyTypeSMACrossFiltered:
		micro := domain.DefaultMicrostructureConfig
		if cfg.Micro != nil {
			micro = *cfg.Micro
		}
		return NewFilteredSMACrossStrategy(cfg.FastPeriod, cfg.SlowPeriod, micro), nil
	default:
		return nil, ErrUnknownStrategyType
	}
}
