package store

import (
	"context"

	"github.com/carecamp/carecamp-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if a user with the same email is already stored.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns every stored user.
	List(ctx context.Context) ([]*domain.User, error)

	// UpdateProfile applies a profile update to the user with the given email.
	// Returns ErrUserNotFound if no user matched.
	UpdateProfile(ctx context.Context, email string, update domain.ProfileUpdate) (*UpdateResult, error)
}
