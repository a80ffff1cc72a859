package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"retention-analytics/internal/analytics"
	"retention-analytics/internal/models"
)

// SnapshotHash derives the cache key for one computation run from the
// snapshot content and the analytics parameters. The key depends on
// nothing else; two identical snapshots computed with the same params map
// to the same cached report, and any change to either invalidates it.
func SnapshotHash(snap *models.Snapshot, params analytics.Params) (string, error) {
	payload := struct {
		Snapshot *models.Snapshot `json:"snapshot"`
		Params   analytics.Params `json:"params"`
	}{Snapshot: snap, Params: params}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize snapshot for hashing: %w", err)
	}

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
