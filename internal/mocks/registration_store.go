package mocks

import (
	"context"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockRegistrationStore implements store.RegistrationStore for testing.
type MockRegistrationStore struct {
	CreateFn     func(ctx context.Context, registration *domain.Registration) error
	ListByUserFn func(ctx context.Context, loggedUserEmail string) ([]*domain.Registration, error)
	ListFn       func(ctx context.Context) ([]*domain.Registration, error)
	MarkPaidFn   func(ctx context.Context, campID, participantEmail, transactionID string) (*store.UpdateResult, error)
	ConfirmFn    func(ctx context.Context, id primitive.ObjectID) (*store.UpdateResult, error)
	DeleteFn     func(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error)

	Err error
}

var _ store.RegistrationStore = (*MockRegistrationStore)(nil)

// Create implements store.RegistrationStore
func (m *MockRegistrationStore) Create(ctx context.Context, registration *domain.Registration) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, registration)
	}
	return m.Err
}

// ListByUser implements store.RegistrationStore
func (m *MockRegistrationStore) ListByUser(ctx context.Context, loggedUserEmail string) ([]*domain.Registration, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, loggedUserEmail)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return []*domain.Registration{}, nil
}

// List implements store.RegistrationStore
func (m *MockRegistrationStore) List(ctx context.Context) ([]*domain.Registration, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return []*domain.Registration{}, nil
}

// MarkPaid implements store.RegistrationStore
func (m *MockRegistrationStore) MarkPaid(
	ctx context.Context,
	campID, participantEmail, transactionID string,
) (*store.UpdateResult, error) {
	if m.MarkPaidFn != nil {
		return m.MarkPaidFn(ctx, campID, participantEmail, transactionID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// Confirm implements store.RegistrationStore
func (m *MockRegistrationStore) Confirm(ctx context.Context, id primitive.ObjectID) (*store.UpdateResult, error) {
	if m.ConfirmFn != nil {
		return m.ConfirmFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// Delete implements store.RegistrationStore
func (m *MockRegistrationStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &store.DeleteResult{DeletedCount: 1}, nil
}
