package marketdata

import (
	"fmt"

	"futures-risk-lab/internal/domain"
	"futures-risk-lab/internal/storage"
)

// ValidateBars checks a bar series before it reaches storage or the engine.
// All errors wrap storage.ErrInvalidInput. Timestamps must be strictly
// increasing; prices non-negative; High >= Low.
func ValidateBars(bars []*domain.Bar) error {
	var prevTs int64
	for i, b := range bars {
		if b == nil {
			return fmt.Errorf("%w: bar %d is nil", storage.ErrInvalidInput, i)
		}
		if b.Symbol == "" {
			return fmt.Errorf("%w: bar %d has empty symbol", storage.ErrInvalidInput, i)
		}
		if b.Open < 0 || b.High < 0 || b.Low < 0 || b.Close < 0 {
			return fmt.Errorf("%w: bar %d has negative price", storage.ErrInvalidInput, i)
		}
		if b.Volume < 0 {
			return fmt.Errorf("%w: bar %d has negative volume", storage.ErrInvalidInput, i)
		}
		if b.High < b.Low {
			return fmt.Errorf("%w: bar %d has high %v below low %v", storage.ErrInvalidInput, i, b.High, b.Low)
		}
		if i > 0 && b.TimestampMs <= prevTs {
			return fmt.Errorf("%w: bar %d timestamp %d not after %d", storage.ErrInvalidInput, i, b.TimestampMs, prevTs)
		}
		prevTs = b.TimestampMs
	}
	return nil
}
