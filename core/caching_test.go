package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prgauge/prgauge/internal/contract"
	"github.com/prgauge/prgauge/internal/iocache"
	"github.com/prgauge/prgauge/schema"
)

func freshBaselineEntry(t *testing.T) ([]byte, int64) {
	t.Helper()
	median := 12.0
	data, err := json.Marshal(schema.BaselineData{
		ComputedAt:          time.Now().UTC().Format(time.RFC3339),
		HistoryN:            5,
		BaselineMedianScore: &median,
		HotspotFiles:        []string{"src/hot.ext"},
	})
	require.NoError(t, err)
	return data, time.Now().Unix()
}

// TestLoadOrRefreshBaselineCacheHit serves a fresh entry without touching the client.
func TestLoadOrRefreshBaselineCacheHit(t *testing.T) {
	cfg := testConfig()
	data, ts := freshBaselineEntry(t)

	mockStore := &iocache.MockCacheStore{}
	mockStore.On("Get", "main").Return(data, baselineCacheVersion, ts, nil)

	mockMgr := &iocache.MockCacheManager{}
	mockMgr.On("GetBaselineStore").Return(mockStore)

	mockClient := &contract.MockChangeClient{}

	baseline := LoadOrRefreshBaseline(context.Background(), cfg, mockClient, mockMgr)
	assert.Equal(t, []string{"src/hot.ext"}, baseline.HotspotFiles)
	require.NotNil(t, baseline.BaselineMedianScore)
	assert.InDelta(t, 12.0, *baseline.BaselineMedianScore, 0.0001)
	mockClient.AssertNotCalled(t, "ListRecentMergedChangeIDs", mock.Anything, mock.Anything)
	mockStore.AssertExpectations(t)
}

// TestLoadOrRefreshBaselineStaleEntry recomputes when the entry is too old.
func TestLoadOrRefreshBaselineStaleEntry(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	data, _ := freshBaselineEntry(t)
	staleTs := time.Now().Add(-48 * time.Hour).Unix()

	mockStore := &iocache.MockCacheStore{}
	mockStore.On("Get", "main").Return(data, baselineCacheVersion, staleTs, nil)
	mockStore.On("Set", "main", mock.Anything, baselineCacheVersion, mock.Anything).Return(nil)

	mockMgr := &iocache.MockCacheManager{}
	mockMgr.On("GetBaselineStore").Return(mockStore)

	mockClient := &contract.MockChangeClient{}
	mockClient.On("ListRecentMergedChangeIDs", ctx, 5).Return([]string{"m1"}, nil)
	mockClient.On("ListChangedFiles", ctx, "m1").Return([]schema.ChangedFile{
		{Path: "src/new.ext", Additions: 10},
	}, nil)

	baseline := LoadOrRefreshBaseline(ctx, cfg, mockClient, mockMgr)
	assert.Equal(t, []string{"src/new.ext"}, baseline.HotspotFiles)
	mockClient.AssertExpectations(t)
	mockStore.AssertExpectations(t)
}

// TestLoadOrRefreshBaselineVersionMismatch treats an old schema version as a miss.
func TestLoadOrRefreshBaselineVersionMismatch(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	data, ts := freshBaselineEntry(t)

	mockStore := &iocache.MockCacheStore{}
	mockStore.On("Get", "main").Return(data, baselineCacheVersion+1, ts, nil)
	mockStore.On("Set", "main", mock.Anything, baselineCacheVersion, mock.Anything).Return(nil)

	mockMgr := &iocache.MockCacheManager{}
	mockMgr.On("GetBaselineStore").Return(mockStore)

	mockClient := &contract.MockChangeClient{}
	mockClient.On("ListRecentMergedChangeIDs", ctx, 5).Return([]string{}, nil)

	baseline := LoadOrRefreshBaseline(ctx, cfg, mockClient, mockMgr)
	assert.Nil(t, baseline.BaselineMedianScore)
	mockStore.AssertExpectations(t)
}

// TestLoadOrRefreshBaselineMissStoresResult confirms a miss computes and writes back.
func TestLoadOrRefreshBaselineMissStoresResult(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	mockStore := &iocache.MockCacheStore{}
	mockStore.On("Get", "main").Return([]byte(nil), 0, int64(0), sql.ErrNoRows)
	mockStore.On("Set", "main", mock.Anything, baselineCacheVersion, mock.Anything).Return(nil)

	mockMgr := &iocache.MockCacheManager{}
	mockMgr.On("GetBaselineStore").Return(mockStore)

	mockClient := &contract.MockChangeClient{}
	mockClient.On("ListRecentMergedChangeIDs", ctx, 5).Return([]string{"m1"}, nil)
	mockClient.On("ListChangedFiles", ctx, "m1").Return([]schema.ChangedFile{
		{Path: "lib/a.ext", Additions: 3},
	}, nil)

	baseline := LoadOrRefreshBaseline(ctx, cfg, mockClient, mockMgr)
	assert.Equal(t, []string{"lib/a.ext"}, baseline.HotspotFiles)
	mockStore.AssertExpectations(t)
}

// TestLoadOrRefreshBaselineNilManager works without any persistence at all.
func TestLoadOrRefreshBaselineNilManager(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	mockClient := &contract.MockChangeClient{}
	mockClient.On("ListRecentMergedChangeIDs", ctx, 5).Return([]string{}, nil)

	baseline := LoadOrRefreshBaseline(ctx, cfg, mockClient, nil)
	assert.Equal(t, 5, baseline.HistoryN)
	assert.Empty(t, baseline.HotspotFiles)
}
