package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostgresCampStore implements store.CampStore on the camps table.
type PostgresCampStore struct {
	db      store.DBTX
	timeout time.Duration
	logger  *slog.Logger
}

// NewPostgresCampStore creates a new PostgresCampStore.
func NewPostgresCampStore(db store.DBTX, timeout time.Duration, logger *slog.Logger) *PostgresCampStore {
	return &PostgresCampStore{
		db:      db,
		timeout: timeout,
		logger:  logger.With("store", "camp"),
	}
}

var _ store.CampStore = (*PostgresCampStore)(nil)

// Create implements store.CampStore.Create
func (s *PostgresCampStore) Create(ctx context.Context, camp *domain.Camp) error {
	if err := camp.Validate(); err != nil {
		return store.NewStoreError("camp", "create", "invalid camp", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := encodeDoc(camp)
	if err != nil {
		return store.NewStoreError("camp", "create", "failed to encode camp", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO camps (id, doc, created_at) VALUES ($1, $2::jsonb, $3)`,
		camp.ID.Hex(), doc, camp.CreatedAt,
	); err != nil {
		return store.NewStoreError("camp", "create", "failed to insert camp", MapError(err))
	}
	return nil
}

// GetByID implements store.CampStore.GetByID
func (s *PostgresCampStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Camp, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	camp, err := queryDoc[domain.Camp](ctx, s.db, `SELECT doc FROM camps WHERE id = $1`, id.Hex())
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, store.ErrCampNotFound
		}
		return nil, store.NewStoreError("camp", "get", "failed to find camp", err)
	}
	return camp, nil
}

// Search implements store.CampStore.Search
func (s *PostgresCampStore) Search(ctx context.Context, query store.CampQuery) (*store.CampPage, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	search := buildCampSearch(query)

	var total int64
	if err := s.db.QueryRowContext(ctx, search.countQuery(), search.args...).Scan(&total); err != nil {
		return nil, store.NewStoreError("camp", "search", "failed to count camps", MapError(err))
	}

	args := append(append([]any{}, search.args...), query.Limit, query.Offset())
	camps, err := queryDocs[domain.Camp](ctx, s.db, search.pageQuery(), args...)
	if err != nil {
		return nil, store.NewStoreError("camp", "search", "failed to query camps", err)
	}

	return &store.CampPage{Total: total, Result: camps}, nil
}

// Popular implements store.CampStore.Popular
func (s *PostgresCampStore) Popular(ctx context.Context, limit int) ([]*domain.Camp, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	camps, err := queryDocs[domain.Camp](ctx, s.db,
		"SELECT doc FROM camps ORDER BY "+campOrderBy(store.SortParticipant)+" LIMIT $1", limit)
	if err != nil {
		return nil, store.NewStoreError("camp", "popular", "failed to query camps", err)
	}
	return camps, nil
}

// Update implements store.CampStore.Update
func (s *PostgresCampStore) Update(
	ctx context.Context,
	id primitive.ObjectID,
	update domain.CampUpdate,
) (*store.UpdateResult, error) {
	if err := update.Validate(); err != nil {
		return nil, store.NewStoreError("camp", "update", "invalid camp update", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := patchDocument(ctx, s.db, campsTable, `id = $1`, update.Fields(), id.Hex())
	if err != nil {
		return nil, store.NewStoreError("camp", "update", "failed to update camp", err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrCampNotFound
	}
	return res, nil
}

// IncrementParticipants implements store.CampStore.IncrementParticipants
// as a single UPDATE so concurrent increments are never lost.
func (s *PostgresCampStore) IncrementParticipants(ctx context.Context, id primitive.ObjectID) (*store.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `
		UPDATE camps
		SET doc = jsonb_set(doc, '{participantCount}',
			to_jsonb(COALESCE((doc->>'participantCount')::int, 0) + 1))
		WHERE id = $1`, id.Hex())
	if err != nil {
		return nil, store.NewStoreError("camp", "increment", "failed to increment participants", MapError(err))
	}

	n, err := CheckRowsAffected(result, store.ErrCampNotFound)
	if err != nil {
		return nil, err
	}
	return &store.UpdateResult{MatchedCount: n, ModifiedCount: n}, nil
}

// Delete implements store.CampStore.Delete
func (s *PostgresCampStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := deleteByID(ctx, s.db, campsTable, id.Hex(), store.ErrCampNotFound)
	if err != nil && !errors.Is(err, store.ErrCampNotFound) {
		return nil, store.NewStoreError("camp", "delete", "failed to delete camp", err)
	}
	return res, err
}
