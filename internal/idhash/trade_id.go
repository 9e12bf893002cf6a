package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeTradeID computes a deterministic trade_id using SHA256.
// Formula: SHA256(run_id|symbol|strategy_id|direction|entry_time_ms)
// Returns hex-encoded hash (64 characters).
func ComputeTradeID(
	runID string,
	symbol string,
	strategyID string,
	direction string,
	entryTimeMs int64,
) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%d",
		runID,
		symbol,
		strategyID,
		direction,
		entryTimeMs,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
