// Package iocache is for durable storage of baselines and analysis history.
package iocache

import (
	"sync"

	"github.com/prgauge/prgauge/internal/contract"
)

// CacheStoreManager manages the baseline and history store instances.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	baseline     contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetBaselineStore returns the baseline CacheStore.
func (mgr *CacheStoreManager) GetBaselineStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.baseline
}

// GetHistoryStore returns the HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
