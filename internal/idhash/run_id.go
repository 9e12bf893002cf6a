// Package idhash computes deterministic identifiers for runs and trades.
// The same inputs always produce the same ID, which makes persisted results
// reproducible and naturally de-duplicated by the append-only stores.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeRunID computes a deterministic run_id using SHA256.
// Formula: SHA256(symbol|strategy_id|start_ms|end_ms|starting_cash)
// Returns hex-encoded hash (64 characters).
func ComputeRunID(
	symbol string,
	strategyID string,
	startMs int64,
	endMs int64,
	startingCash float64,
) string {
	data := fmt.Sprintf("%s|%s|%d|%d|%.2f",
		symbol,
		strategyID,
		startMs,
		endMs,
		startingCash,
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
