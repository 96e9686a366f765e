package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db      store.DBTX
	timeout time.Duration
	logger  *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection that should be initialized and managed by the caller.
func NewPostgresUserStore(db store.DBTX, timeout time.Duration, logger *slog.Logger) *PostgresUserStore {
	return &PostgresUserStore{
		db:      db,
		timeout: timeout,
		logger:  logger.With("store", "user"),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return store.NewStoreError("user", "create", "invalid user", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, user.Email,
	).Scan(&exists); err != nil {
		return store.NewStoreError("user", "create", "failed to check email", MapError(err))
	}
	if exists {
		return store.ErrEmailExists
	}

	doc, err := encodeDoc(user)
	if err != nil {
		return store.NewStoreError("user", "create", "failed to encode user", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, doc, created_at) VALUES ($1, $2, $3::jsonb, $4)`,
		user.ID.Hex(), user.Email, doc, user.CreatedAt,
	)
	if err != nil {
		return store.NewStoreError("user", "create", "failed to insert user",
			MapUniqueViolation(err, store.ErrEmailExists))
	}

	s.logger.Debug("user created", "user_id", user.ID.Hex())
	return nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	user, err := queryDoc[domain.User](ctx, s.db,
		`SELECT doc FROM users WHERE email = $1`, domain.NormalizeEmail(email))
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", "failed to find user", err)
	}
	return user, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	users, err := queryDocs[domain.User](ctx, s.db, `SELECT doc FROM users ORDER BY id`)
	if err != nil {
		return nil, store.NewStoreError("user", "list", "failed to query users", err)
	}
	return users, nil
}

// UpdateProfile implements store.UserStore.UpdateProfile
func (s *PostgresUserStore) UpdateProfile(
	ctx context.Context,
	email string,
	update domain.ProfileUpdate,
) (*store.UpdateResult, error) {
	if err := update.Validate(); err != nil {
		return nil, store.NewStoreError("user", "update", "invalid profile", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := patchDocument(ctx, s.db, usersTable, `email = $1`, update.Fields(), domain.NormalizeEmail(email))
	if err != nil {
		return nil, store.NewStoreError("user", "update", "failed to update profile", err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrUserNotFound
	}
	return res, nil
}
