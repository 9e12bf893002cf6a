package strategy

import (
	"context"

	"futures-risk-lab/internal/domain"
)

// Strategy consumes bars one at a time and emits directional signals.
type Strategy interface {
	// OnBar processes the next bar and returns a signal, or nil when the
	// strategy wants no position change on this bar.
	OnBar(ctx context.Context, bar *BarContext) (*Signal, error)

	// OnTradeClosed notifies the strategy that a position-closing trade
	// settled, so it can reset any per-position state.
	OnTradeClosed(trade *domain.TradeRecord)

	// ID returns strategy identifier (includes parameters).
	ID() string
}

// BarContext holds the bar under evaluation plus per-bar derived data the
// engine already computed.
type BarContext struct {
	Bar *domain.Bar

	// Spread is the relative spread estimate for this bar, nil when the
	// estimate is undefined.
	Spread *float64
}

// Signal requests a target direction. The engine decides sizing and fills;
// an open position in the opposite direction is reversed.
type Signal struct {
	Direction string // domain.DirectionLong or domain.DirectionShort
}
