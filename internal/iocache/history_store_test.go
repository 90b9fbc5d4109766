package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prgauge/prgauge/schema"
)

func newSQLiteHistoryStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func sampleRun(changeID string, score int) schema.ChangeRun {
	return schema.ChangeRun{
		AnalyzedAt:    time.Now().UTC(),
		ChangeID:      changeID,
		Branch:        "main",
		Files:         5,
		Lines:         320,
		Score:         score,
		Verdict:       "medium",
		ReviewMinutes: 28,
	}
}

func TestHistoryStoreRoundtrip(t *testing.T) {
	store := newSQLiteHistoryStore(t)

	require.NoError(t, store.RecordRun(sampleRun("main...feat-a", 55)))
	require.NoError(t, store.RecordRun(sampleRun("main...feat-b", 23)))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Runs come back oldest first with assigned IDs
	assert.Equal(t, int64(1), runs[0].RunID)
	assert.Equal(t, int64(2), runs[1].RunID)
	assert.Equal(t, "main...feat-a", runs[0].ChangeID)
	assert.Equal(t, 55, runs[0].Score)
	assert.Equal(t, "medium", runs[0].Verdict)
	assert.Equal(t, 28, runs[0].ReviewMinutes)
	assert.WithinDuration(t, time.Now().UTC(), runs[0].AnalyzedAt, time.Minute)
}

func TestHistoryStoreStatus(t *testing.T) {
	store := newSQLiteHistoryStore(t)

	// Empty store reports zero runs
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)

	require.NoError(t, store.RecordRun(sampleRun("main...feat-a", 55)))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
	assert.Equal(t, 1, status.TotalRuns)
	assert.WithinDuration(t, time.Now().UTC(), status.LastRunTime, time.Minute)
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	require.NoError(t, store.RecordRun(sampleRun("main...feat-a", 55)))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	// SQLite stores strings, server backends store native datetimes
	assert.Equal(t, "2026-08-26T12:00:00Z", formatTime(ts, schema.SQLiteBackend))
	assert.Equal(t, ts, formatTime(ts, schema.MySQLBackend))
	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}
