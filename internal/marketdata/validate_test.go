package marketdata

import (
	"errors"
	"testing"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

func validBar(ts int64) *domain.Bar {
	return &domain.Bar{
		Symbol:      "MES",
		TimestampMs: ts,
		Open:        100,
		High:        101,
		Low:         99,
		Close:       100.5,
		Volume:      1000,
	}
}

func TestValidateBars_OK(t *testing.T) {
	bars := []*domain.Bar{validBar(100), validBar(200), validBar(300)}
	if err := ValidateBars(bars); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateBars(nil); err != nil {
		t.Errorf("empty series must validate: %v", err)
	}
}

func TestValidateBars_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]*domain.Bar)
	}{
		{"nil bar", func(bars []*domain.Bar) { bars[1] = nil }},
		{"empty symbol", func(bars []*domain.Bar) { bars[1].Symbol = "" }},
		{"negative price", func(bars []*domain.Bar) { bars[1].Low = -1 }},
		{"negative volume", func(bars []*domain.Bar) { bars[1].Volume = -5 }},
		{"high below low", func(bars []*domain.Bar) { bars[1].High = 98 }},
		{"duplicate timestamp", func(bars []*domain.Bar) { bars[1].TimestampMs = 100 }},
		{"decreasing timestamp", func(bars []*domain.Bar) { bars[1].TimestampMs = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars := []*domain.Bar{validBar(100), validBar(200), validBar(300)}
			tt.mutate(bars)

			err := ValidateBars(bars)
			if !errors.Is(err, storage.ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
