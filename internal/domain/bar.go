package domain

// Bar represents one daily OHLCV observation.
// Bars for a symbol form an ordered sequence with strictly increasing
// timestamps; volume may be zero, prices may not be missing.
type Bar struct {
	Symbol      string  // instrument identifier (e.g. "MES")
	TimestampMs int64   // Unix timestamp in milliseconds (session date at midnight UTC)
	Open        float64 // session open price
	High        float64 // session high price
	Low         float64 // session low price
	Close       float64 // session close price
	Volume      float64 // traded volume (contracts)
}
