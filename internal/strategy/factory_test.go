package strategy

import (
	"errors"
	"testing"

	"futures-risk-lab/internal/domain"
)

func TestFromConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.StrategyConfig
		wantErr error
		wantID  string
	}{
		{
			name: "sma cross",
			cfg: domain.StrategyConfig{
				StrategyType: domain.StrategyTypeSMACross,
				FastPeriod:   10,
				SlowPeriod:   30,
			},
			wantID: "SMA_CROSS_f10_s30",
		},
		{
			name: "filtered with defaults",
			cfg: domain.StrategyConfig{
				StrategyType: domain.StrategyTypeSMACrossFiltered,
				FastPeriod:   10,
				SlowPeriod:   30,
			},
			wantID: "SMA_CROSS_FILTERED_f10_s30_vol30_hold1",
		},
		{
			name: "unknown type",
			cfg: domain.StrategyConfig{
				StrategyType: "MOMENTUM",
				FastPeriod:   10,
				SlowPeriod:   30,
			},
			wantErr: ErrUnknownStrategyType,
		},
		{
			name: "zero fast period",
			cfg: domain.StrategyConfig{
				StrategyType: domain.StrategyTypeSMACross,
				FastPeriod:   0,
				SlowPeriod:   30,
			},
			wantErr: ErrInvalidFastPeriod,
		},
		{
			name: "slow not greater than fast",
			cfg: domain.StrategyConfig{
				StrategyType: domain.StrategyTypeSMACross,
				FastPeriod:   30,
				SlowPeriod:   30,
			},
			wantErr: ErrInvalidSlowPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromConfig(tt.cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if s.ID() != tt.wantID {
				t.Errorf("ID = %s, want %s", s.ID(), tt.wantID)
			}
		})
	}
}

func TestFromConfig_FilteredWithSpreadCeiling(t *testing.T) {
	maxSpread := 0.02
	s, err := FromConfig(domain.StrategyConfig{
		StrategyType: domain.StrategyTypeSMACrossFiltered,
		FastPeriod:   10,
		SlowPeriod:   30,
		Micro: &domain.MicrostructureConfig{
			MinVolumePctAvg:  0.5,
			MaxSpreadPct:     &maxSpread,
			MinHoldingPeriod: 3,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	want := "SMA_CROSS_FILTERED_f10_s30_vol50_hold3_spread0.0200"
	if s.ID() != want {
		t.Errorf("ID = %s, want %s", s.ID(), want)
	}
}
