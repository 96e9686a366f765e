package mocks

import (
	"context"
	"sync"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, user *domain.User) error
	GetByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	ListFn          func(ctx context.Context) ([]*domain.User, error)
	UpdateProfileFn func(ctx context.Context, email string, update domain.ProfileUpdate) (*store.UpdateResult, error)

	// Data for default implementation
	mu    sync.Mutex
	Users map[string]*domain.User
	Err   error
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store seeded with users.
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	m := &MockUserStore{Users: make(map[string]*domain.User)}
	for _, u := range users {
		m.Users[u.Email] = u
	}
	return m
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Users == nil {
		m.Users = make(map[string]*domain.User)
	}
	if _, exists := m.Users[user.Email]; exists {
		return store.ErrEmailExists
	}
	m.Users[user.Email] = user
	return nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.Users[domain.NormalizeEmail(email)]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// List implements the UserStore interface
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*domain.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, u)
	}
	return users, nil
}

// UpdateProfile implements the UserStore interface
func (m *MockUserStore) UpdateProfile(
	ctx context.Context,
	email string,
	update domain.ProfileUpdate,
) (*store.UpdateResult, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, email, update)
	}
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Users[domain.NormalizeEmail(email)]; !exists {
		return nil, store.ErrUserNotFound
	}
	return &store.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}
