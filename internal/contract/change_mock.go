package contract

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/prgauge/prgauge/schema"
)

// MockChangeClient is a mock implementation of ChangeClient for testing.
type MockChangeClient struct {
	mock.Mock
}

var _ ChangeClient = &MockChangeClient{} // Compile-time check

// ListChangedFiles implements the ChangeClient interface.
func (m *MockChangeClient) ListChangedFiles(ctx context.Context, changeID string) ([]schema.ChangedFile, error) {
	args := m.Called(ctx, changeID)
	files, _ := args.Get(0).([]schema.ChangedFile)
	return files, args.Error(1)
}

// ListRecentMergedChangeIDs implements the ChangeClient interface.
func (m *MockChangeClient) ListRecentMergedChangeIDs(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

// MockCommentPublisher is a mock implementation of CommentPublisher for testing.
type MockCommentPublisher struct {
	mock.Mock
}

var _ CommentPublisher = &MockCommentPublisher{} // Compile-time check

// PublishComment implements the CommentPublisher interface.
func (m *MockCommentPublisher) PublishComment(ctx context.Context, changeID string, body string) error {
	args := m.Called(ctx, changeID, body)
	return args.Error(0)
}
