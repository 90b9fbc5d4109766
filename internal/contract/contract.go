// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/prgauge/prgauge/schema"
)

// ChangeClient defines the operations needed to inspect a change and the
// repository's recent merge history. This allows the core analysis logic to
// be tested without a real git executable or a live GitHub API.
type ChangeClient interface {
	// ListChangedFiles returns the per-file additions and deletions for a
	// change. The change ID is provider-specific: a ref range like
	// "main...feature" or a commit for the local provider, a pull request
	// number for GitHub.
	ListChangedFiles(ctx context.Context, changeID string) ([]schema.ChangedFile, error)

	// ListRecentMergedChangeIDs returns identifiers for the most recent
	// merged changes, newest first, up to limit.
	ListRecentMergedChangeIDs(ctx context.Context, limit int) ([]string, error)
}

// CommentPublisher posts a report to the change's discussion thread,
// replacing any previous report from the same tool.
type CommentPublisher interface {
	PublishComment(ctx context.Context, changeID string, body string) error
}

// CacheManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetBaselineStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for baseline cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for recording analyzed changes over time.
type HistoryStore interface {
	// RecordRun stores the summary of one analyzed change
	RecordRun(run schema.ChangeRun) error

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.ChangeRun, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
