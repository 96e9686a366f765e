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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FeedbackStore implements store.FeedbackStore on the feedback collection.
type FeedbackStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	logger  *slog.Logger
}

// NewFeedbackStore creates a FeedbackStore backed by db.
func NewFeedbackStore(db *mongo.Database, timeout time.Duration, logger *slog.Logger) *FeedbackStore {
	return &FeedbackStore{
		coll:    db.Collection(FeedbackCollection),
		timeout: timeout,
		logger:  logger.With("store", "feedback"),
	}
}

var _ store.FeedbackStore = (*FeedbackStore)(nil)

// Create implements store.FeedbackStore.Create
func (s *FeedbackStore) Create(ctx context.Context, feedback *domain.Feedback) error {
	if err := feedback.Validate(); err != nil {
		return store.NewStoreError("feedback", "create", "invalid feedback", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, feedback); err != nil {
		return store.NewStoreError("feedback", "create", "failed to insert feedback", MapError(err))
	}
	return nil
}

// List implements store.FeedbackStore.List
func (s *FeedbackStore) List(ctx context.Context) ([]*domain.Feedback, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, store.NewStoreError("feedback", "list", "failed to query feedback", MapError(err))
	}

	items, err := decodeAll[domain.Feedback](ctx, cur)
	if err != nil {
		return nil, store.NewStoreError("feedback", "list", "failed to decode feedback", MapError(err))
	}
	return items, nil
}
