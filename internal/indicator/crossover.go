package indicator

// Crossover tracks which side of the slow line the fast line sits on and
// reports the bar on which the side flips. Exact equality keeps the prior
// side, so a diff that touches zero and comes back does not signal, while a
// cross that passes through zero over two bars still does.
type Crossover struct {
	lastSign int // -1, 0 (no side established yet) or +1
}

// NewCrossover creates an unprimed detector. Updates never signal until the
// fast line has been strictly on one side of the slow line at least once.
func NewCrossover() *Crossover {
	return &Crossover{}
}

// Update feeds the current fast and slow values and returns:
//
//	+1 when fast crosses above slow on this update
//	-1 when fast crosses below slow
//	 0 otherwise
func (c *Crossover) Update(fast, slow float64) int {
	var sign int
	switch diff := fast - slow; {
	case diff > 0:
		sign = 1
	case diff < 0:
		sign = -1
	default:
		return 0
	}

	prev := c.lastSign
	c.lastSign = sign
	if prev == 0 || prev == sign {
		return 0
	}
	return sign
}
