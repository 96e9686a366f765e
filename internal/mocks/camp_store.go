package mocks

import (
	"context"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCampStore implements store.CampStore for testing.
// Methods without a function field return zero results or Err.
type MockCampStore struct {
	CreateFn                func(ctx context.Context, camp *domain.Camp) error
	GetByIDFn               func(ctx context.Context, id primitive.ObjectID) (*domain.Camp, error)
	SearchFn                func(ctx context.Context, query store.CampQuery) (*store.CampPage, error)
	PopularFn               func(ctx context.Context, limit int) ([]*domain.Camp, error)
	UpdateFn                func(ctx context.Context, id primitive.ObjectID, update domain.CampUpdate) (*store.UpdateResult, error)
	IncrementParticipantsFn func(ctx context.Context, id primitive.ObjectID) (*store.UpdateResult, error)
	DeleteFn                func(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error)

	Err error
}

var _ store.CampStore = (*MockCampStore)(nil)

// Create implements store.CampStore
func (m *MockCampStore) Create(ctx context.Context, camp *domain.Camp) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, camp)
	}
	return m.Err
}

// GetByID implements store.CampStore
func (m *MockCampStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Camp, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrCampNotFound
}

// Search implements store.CampStore
func (m *MockCampStore) Search(ctx context.Context, query store.CampQuery) (*store.CampPage, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &store.CampPage{Result: []*domain.Camp{}}, nil
}

// Popular implements store.CampStore
func (m *MockCampStore) Popular(ctx context.Context, limit int) ([]*domain.Camp, error) {
	if m.PopularFn != nil {
		return m.PopularFn(ctx, limit)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return []*domain.Camp{}, nil
}

// Update implements store.CampStore
func (m *MockCampStore) Update(
	ctx context.Context,
	id primitive.ObjectID,
	update domain.CampUpdate,
) (*store.UpdateResult, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// IncrementParticipants implements store.CampStore
func (m *MockCampStore) IncrementParticipants(ctx context.Context, id primitive.ObjectID) (*store.UpdateResult, error) {
	if m.IncrementParticipantsFn != nil {
		return m.IncrementParticipantsFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// Delete implements store.CampStore
func (m *MockCampStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &store.DeleteResult{DeletedCount: 1}, nil
}
