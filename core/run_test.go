package core

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/prgauge/prgauge/internal/contract"
	"github.com/prgauge/prgauge/internal/iocache"
	"github.com/prgauge/prgauge/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		Branch:         "main",
		ChangeID:       "main...feature",
		HistoryWindow:  5,
		BaselineMaxAge: contract.DefaultBaselineMaxAge,
	}
}

// TestExecuteChangeAnalysis runs the full pipeline with a mocked client and
// no persistence.
func TestExecuteChangeAnalysis(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	mockClient := &contract.MockChangeClient{}
	mockClient.On("ListChangedFiles", ctx, "main...feature").Return([]schema.ChangedFile{
		{Path: "src/a.ext", Additions: 50, Deletions: 10},
	}, nil)
	mockClient.On("ListRecentMergedChangeIDs", ctx, 5).Return([]string{"m1"}, nil)
	mockClient.On("ListChangedFiles", ctx, "m1").Return([]schema.ChangedFile{
		{Path: "src/a.ext", Additions: 5},
	}, nil)

	report, err := ExecuteChangeAnalysis(ctx, cfg, mockClient, nil)
	require.NoError(t, err)

	assert.Equal(t, "main...feature", report.ChangeID)
	assert.Equal(t, "main", report.Branch)
	assert.Equal(t, 5, report.Baseline.HistoryN)
	assert.False(t, report.GeneratedAt.IsZero())
	// src/a.ext is the only historical path, so it is a hotspot this run.
	assert.Equal(t, 1, report.Result.Counts.Hotspots)
	mockClient.AssertExpectations(t)
}

// TestExecuteChangeAnalysisNoChangeID checks the fatal input validation.
func TestExecuteChangeAnalysisNoChangeID(t *testing.T) {
	cfg := testConfig()
	cfg.ChangeID = ""

	_, err := ExecuteChangeAnalysis(context.Background(), cfg, &contract.MockChangeClient{}, nil)
	assert.Error(t, err)
}

// TestExecuteChangeAnalysisFileListFailure confirms a broken client is fatal.
func TestExecuteChangeAnalysisFileListFailure(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	mockClient := &contract.MockChangeClient{}
	mockClient.On("ListChangedFiles", ctx, "main...feature").Return(nil, errors.New("boom"))

	_, err := ExecuteChangeAnalysis(ctx, cfg, mockClient, nil)
	assert.Error(t, err)
	mockClient.AssertExpectations(t)
}

// TestExecuteChangeAnalysisBaselineFailureIsNotFatal confirms the analysis
// proceeds with an empty baseline when history cannot be fetched.
func TestExecuteChangeAnalysisBaselineFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	mockClient := &contract.MockChangeClient{}
	mockClient.On("ListChangedFiles", ctx, "main...feature").Return([]schema.ChangedFile{
		{Path: "src/a.ext", Additions: 50, Deletions: 10},
	}, nil)
	mockClient.On("ListRecentMergedChangeIDs", ctx, 5).Return(nil, errors.New("no remote"))

	report, err := ExecuteChangeAnalysis(ctx, cfg, mockClient, nil)
	require.NoError(t, err)
	assert.Nil(t, report.Baseline.BaselineMedianScore)
	assert.Empty(t, report.Baseline.HotspotFiles)
	assert.Equal(t, 26, report.Result.Scores.Score)
	mockClient.AssertExpectations(t)
}

// TestExecuteChangeAnalysisRecordsHistory confirms the run lands in the
// history store, and that a store failure is swallowed.
func TestExecuteChangeAnalysisRecordsHistory(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	mockClient := &contract.MockChangeClient{}
	mockClient.On("ListChangedFiles", ctx, "main...feature").Return([]schema.ChangedFile{
		{Path: "docs/a.md", Additions: 3},
	}, nil)
	mockClient.On("ListRecentMergedChangeIDs", ctx, 5).Return([]string{}, nil)

	mockStore := &iocache.MockCacheStore{}
	mockStore.On("Get", "main").Return([]byte(nil), 0, int64(0), sql.ErrNoRows)
	mockStore.On("Set", "main", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	mockHistory := &iocache.MockHistoryStore{}
	mockHistory.On("RecordRun", mock.MatchedBy(func(run schema.ChangeRun) bool {
		return run.ChangeID == "main...feature" && run.Branch == "main" && run.Files == 1
	})).Return(errors.New("disk full"))

	mockMgr := &iocache.MockCacheManager{}
	mockMgr.On("GetBaselineStore").Return(mockStore)
	mockMgr.On("GetHistoryStore").Return(mockHistory)

	report, err := ExecuteChangeAnalysis(ctx, cfg, mockClient, mockMgr)
	require.NoError(t, err)
	assert.True(t, report.Result.Counts.DocsOnly)
	mockHistory.AssertExpectations(t)
}

// TestRefreshBaselineSkipsBrokenChanges verifies per-change fetch failures
// are skipped rather than propagated.
func TestRefreshBaselineSkipsBrokenChanges(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()

	mockClient := &contract.MockChangeClient{}
	mockClient.On("ListRecentMergedChangeIDs", ctx, 5).Return([]string{"m1", "m2"}, nil)
	mockClient.On("ListChangedFiles", ctx, "m1").Return(nil, errors.New("gone"))
	mockClient.On("ListChangedFiles", ctx, "m2").Return([]schema.ChangedFile{
		{Path: "src/a.ext", Additions: 10},
	}, nil)

	baseline, err := RefreshBaseline(ctx, cfg, mockClient)
	require.NoError(t, err)
	assert.Equal(t, 5, baseline.HistoryN)
	require.NotNil(t, baseline.BaselineMedianScore)
	assert.Equal(t, []string{"src/a.ext"}, baseline.HotspotFiles)
	mockClient.AssertExpectations(t)
}
