package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
)

// PostgresFeedbackStore implements store.FeedbackStore on the feedback table.
type PostgresFeedbackStore struct {
	db      store.DBTX
	timeout time.Duration
	logger  *slog.Logger
}

// NewPostgresFeedbackStore creates a new PostgresFeedbackStore.
func NewPostgresFeedbackStore(db store.DBTX, timeout time.Duration, logger *slog.Logger) *PostgresFeedbackStore {
	return &PostgresFeedbackStore{
		db:      db,
		timeout: timeout,
		logger:  logger.With("store", "feedback"),
	}
}

var _ store.FeedbackStore = (*PostgresFeedbackStore)(nil)

// Create implements store.FeedbackStore.Create
func (s *PostgresFeedbackStore) Create(ctx context.Context, feedback *domain.Feedback) error {
	if err := feedback.Validate(); err != nil {
		return store.NewStoreError("feedback", "create", "invalid feedback", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := encodeDoc(feedback)
	if err != nil {
		return store.NewStoreError("feedback", "create", "failed to encode feedback", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, doc, created_at) VALUES ($1, $2::jsonb, $3)`,
		feedback.ID.Hex(), doc, feedback.CreatedAt,
	); err != nil {
		return store.NewStoreError("feedback", "create", "failed to insert feedback", MapError(err))
	}
	return nil
}

// List implements store.FeedbackStore.List
func (s *PostgresFeedbackStore) List(ctx context.Context) ([]*domain.Feedback, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	items, err := queryDocs[domain.Feedback](ctx, s.db,
		`SELECT doc FROM feedback ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, store.NewStoreError("feedback", "list", "failed to query feedback", err)
	}
	return items, nil
}
