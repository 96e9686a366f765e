package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CampStore implements store.CampStore on the camps collection.
type CampStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	logger  *slog.Logger
}

// NewCampStore creates a CampStore backed by db.
func NewCampStore(db *mongo.Database, timeout time.Duration, logger *slog.Logger) *CampStore {
	return &CampStore{
		coll:    db.Collection(CampsCollection),
		timeout: timeout,
		logger:  logger.With("store", "camp"),
	}
}

var _ store.CampStore = (*CampStore)(nil)

// Create implements store.CampStore.Create
func (s *CampStore) Create(ctx context.Context, camp *domain.Camp) error {
	if err := camp.Validate(); err != nil {
		return store.NewStoreError("camp", "create", "invalid camp", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, camp); err != nil {
		return store.NewStoreError("camp", "create", "failed to insert camp", MapError(err))
	}
	return nil
}

// GetByID implements store.CampStore.GetByID
func (s *CampStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Camp, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var camp domain.Camp
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&camp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrCampNotFound
		}
		return nil, store.NewStoreError("camp", "get", "failed to find camp", MapError(err))
	}
	return &camp, nil
}

// Search implements store.CampStore.Search
func (s *CampStore) Search(ctx context.Context, query store.CampQuery) (*store.CampPage, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	filter := buildCampFilter(query.Search)

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, store.NewStoreError("camp", "search", "failed to count camps", MapError(err))
	}

	cur, err := s.coll.Find(ctx, filter, campFindOptions(query))
	if err != nil {
		return nil, store.NewStoreError("camp", "search", "failed to query camps", MapError(err))
	}

	camps, err := decodeAll[domain.Camp](ctx, cur)
	if err != nil {
		return nil, store.NewStoreError("camp", "search", "failed to decode camps", MapError(err))
	}

	s.logger.Debug("camp search",
		"sort", string(query.Sort),
		"page", query.Page,
		"limit", query.Limit,
		"total", total,
		"returned", len(camps))

	return &store.CampPage{Total: total, Result: camps}, nil
}

// Popular implements store.CampStore.Popular
func (s *CampStore) Popular(ctx context.Context, limit int) ([]*domain.Camp, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(buildCampSort(store.SortParticipant)).
		SetLimit(int64(limit))

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, store.NewStoreError("camp", "popular", "failed to query camps", MapError(err))
	}

	camps, err := decodeAll[domain.Camp](ctx, cur)
	if err != nil {
		return nil, store.NewStoreError("camp", "popular", "failed to decode camps", MapError(err))
	}
	return camps, nil
}

// Update implements store.CampStore.Update
func (s *CampStore) Update(
	ctx context.Context,
	id primitive.ObjectID,
	update domain.CampUpdate,
) (*store.UpdateResult, error) {
	if err := update.Validate(); err != nil {
		return nil, store.NewStoreError("camp", "update", "invalid camp update", errors.Join(store.ErrInvalidEntity, err))
	}

	return s.updateOne(ctx, "update", id, bson.M{"$set": update.Fields()})
}

// IncrementParticipants implements store.CampStore.IncrementParticipants
func (s *CampStore) IncrementParticipants(ctx context.Context, id primitive.ObjectID) (*store.UpdateResult, error) {
	return s.updateOne(ctx, "increment", id, bson.M{"$inc": bson.M{"participantCount": 1}})
}

func (s *CampStore) updateOne(
	ctx context.Context,
	op string,
	id primitive.ObjectID,
	update bson.M,
) (*store.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, store.NewStoreError("camp", op, "failed to update camp", MapError(err))
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrCampNotFound
	}
	return &store.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Delete implements store.CampStore.Delete
func (s *CampStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, store.NewStoreError("camp", "delete", "failed to delete camp", MapError(err))
	}
	if res.DeletedCount == 0 {
		return nil, store.ErrCampNotFound
	}
	return &store.DeleteResult{DeletedCount: res.DeletedCount}, nil
}
