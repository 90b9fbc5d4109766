package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prgauge/prgauge/internal/contract"
	"github.com/prgauge/prgauge/schema"
)

// baselineCacheVersion defines the version of the baseline cache schema
const baselineCacheVersion = 1

// LoadOrRefreshBaseline returns the baseline for the configured branch,
// serving from cache when a fresh entry exists and recomputing from history
// otherwise. It never fails: when the history cannot be fetched the analysis
// proceeds with an empty baseline and a warning.
func LoadOrRefreshBaseline(ctx context.Context, cfg *contract.Config, client contract.ChangeClient, mgr contract.CacheManager) schema.BaselineData {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetBaselineStore()
	}

	key := cfg.Branch
	if store != nil {
		if baseline := checkBaselineHit(store, key, cfg.BaselineMaxAge); baseline != nil {
			return *baseline
		}
	}

	baseline, err := RefreshBaseline(ctx, cfg, client)
	if err != nil {
		contract.LogWarn("baseline refresh failed, trend unavailable", err)
		return schema.BaselineData{
			ComputedAt:   time.Now().UTC().Format(time.RFC3339),
			HotspotFiles: []string{},
		}
	}

	if store != nil {
		storeBaseline(store, key, baseline)
	}
	return baseline
}

// SaveBaseline persists a freshly computed baseline for the configured branch.
// Used by the explicit refresh paths (CLI and MCP), which bypass the cache
// read in LoadOrRefreshBaseline.
func SaveBaseline(cfg *contract.Config, mgr contract.CacheManager, baseline schema.BaselineData) {
	if mgr == nil {
		return
	}
	if store := mgr.GetBaselineStore(); store != nil {
		storeBaseline(store, cfg.Branch, baseline)
	}
}

// checkBaselineHit attempts to retrieve and validate a cached baseline
func checkBaselineHit(store contract.CacheStore, key string, maxAge time.Duration) *schema.BaselineData {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == baselineCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= maxAge {
			var baseline schema.BaselineData
			if err := json.Unmarshal(data, &baseline); err == nil {
				return &baseline // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// storeBaseline writes the baseline back to the cache. Failures are ignored
// so a broken cache never blocks an analysis.
func storeBaseline(store contract.CacheStore, key string, baseline schema.BaselineData) {
	if data, err := json.Marshal(baseline); err == nil {
		_ = store.Set(key, data, baselineCacheVersion, time.Now().Unix())
	}
}
