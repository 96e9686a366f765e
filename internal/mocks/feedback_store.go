package mocks

import (
	"context"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
)

// MockFeedbackStore implements store.FeedbackStore for testing.
type MockFeedbackStore struct {
	CreateFn func(ctx context.Context, feedback *domain.Feedback) error
	ListFn   func(ctx context.Context) ([]*domain.Feedback, error)

	Err error
}

var _ store.FeedbackStore = (*MockFeedbackStore)(nil)

// Create implements store.FeedbackStore
func (m *MockFeedbackStore) Create(ctx context.Context, feedback *domain.Feedback) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, feedback)
	}
	return m.Err
}

// List implements store.FeedbackStore
func (m *MockFeedbackStore) List(ctx context.Context) ([]*domain.Feedback, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return []*domain.Feedback{}, nil
}
