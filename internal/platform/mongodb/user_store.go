package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserStore implements store.UserStore on the users collection.
type UserStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	logger  *slog.Logger
}

// NewUserStore creates a UserStore backed by db.
func NewUserStore(db *mongo.Database, timeout time.Duration, logger *slog.Logger) *UserStore {
	return &UserStore{
		coll:    db.Collection(UsersCollection),
		timeout: timeout,
		logger:  logger.With("store", "user"),
	}
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// Create implements store.UserStore.Create.
// The email is looked up first; the unique index catches a concurrent insert.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "invalid user", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.coll.FindOne(ctx, bson.M{"email": user.Email}).Err()
	switch {
	case err == nil:
		return store.ErrEmailExists
	case !errors.Is(err, mongo.ErrNoDocuments):
		return store.NewStoreError("user", "create", "failed to check email", MapError(err))
	}

	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrEmailExists
		}
		return store.NewStoreError("user", "create", "failed to insert user", MapError(err))
	}

	s.logger.Debug("user created", "user_id", user.ID.Hex())
	return nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var user domain.User
	err := s.coll.FindOne(ctx, bson.M{"email": domain.NormalizeEmail(email)}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", "failed to find user", MapError(err))
	}
	return &user, nil
}

// List implements store.UserStore.List
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, store.NewStoreError("user", "list", "failed to query users", MapError(err))
	}

	users, err := decodeAll[domain.User](ctx, cur)
	if err != nil {
		return nil, store.NewStoreError("user", "list", "failed to decode users", MapError(err))
	}
	return users, nil
}

// UpdateProfile implements store.UserStore.UpdateProfile
func (s *UserStore) UpdateProfile(
	ctx context.Context,
	email string,
	update domain.ProfileUpdate,
) (*store.UpdateResult, error) {
	if err := update.Validate(); err != nil {
		return nil, store.NewStoreError("user", "update", "invalid profile", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"email": domain.NormalizeEmail(email)},
		bson.M{"$set": update.Fields()},
	)
	if err != nil {
		return nil, store.NewStoreError("user", "update", "failed to update profile", MapError(err))
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrUserNotFound
	}

	return &store.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}
