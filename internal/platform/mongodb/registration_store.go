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
)

// RegistrationStore implements store.RegistrationStore on the registrations collection.
type RegistrationStore struct {
	coll    *mongo.Collection
	timeout time.Duration
	logger  *slog.Logger
}

// NewRegistrationStore creates a RegistrationStore backed by db.
func NewRegistrationStore(db *mongo.Database, timeout time.Duration, logger *slog.Logger) *RegistrationStore {
	return &RegistrationStore{
		coll:    db.Collection(RegistrationsCollection),
		timeout: timeout,
		logger:  logger.With("store", "registration"),
	}
}

var _ store.RegistrationStore = (*RegistrationStore)(nil)

// Create implements store.RegistrationStore.Create
func (s *RegistrationStore) Create(ctx context.Context, registration *domain.Registration) error {
	if err := registration.Validate(); err != nil {
		return store.NewStoreError("registration", "create", "invalid registration", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, registration); err != nil {
		return store.NewStoreError("registration", "create", "failed to insert registration", MapError(err))
	}
	return nil
}

// ListByUser implements store.RegistrationStore.ListByUser
func (s *RegistrationStore) ListByUser(ctx context.Context, loggedUserEmail string) ([]*domain.Registration, error) {
	return s.find(ctx, "list_by_user", bson.M{"loggedUserEmail": domain.NormalizeEmail(loggedUserEmail)})
}

// List implements store.RegistrationStore.List
func (s *RegistrationStore) List(ctx context.Context) ([]*domain.Registration, error) {
	return s.find(ctx, "list", bson.M{})
}

func (s *RegistrationStore) find(ctx context.Context, op string, filter bson.M) ([]*domain.Registration, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, store.NewStoreError("registration", op, "failed to query registrations", MapError(err))
	}

	regs, err := decodeAll[domain.Registration](ctx, cur)
	if err != nil {
		return nil, store.NewStoreError("registration", op, "failed to decode registrations", MapError(err))
	}
	return regs, nil
}

// MarkPaid implements store.RegistrationStore.MarkPaid
func (s *RegistrationStore) MarkPaid(
	ctx context.Context,
	campID, participantEmail, transactionID string,
) (*store.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{
		"campId":           campID,
		"participantEmail": domain.NormalizeEmail(participantEmail),
	}
	update := bson.M{"$set": bson.M{
		"paymentStatus": domain.PaymentPaid,
		"transactionId": transactionID,
	}}

	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, store.NewStoreError("registration", "mark_paid", "failed to update payment status", MapError(err))
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrRegistrationNotFound
	}
	return &store.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Confirm implements store.RegistrationStore.Confirm
func (s *RegistrationStore) Confirm(ctx context.Context, id primitive.ObjectID) (*store.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{
		"_id":                id,
		"confirmationStatus": bson.M{"$ne": domain.ConfirmationConfirmed},
	}
	update := bson.M{"$set": bson.M{"confirmationStatus": domain.ConfirmationConfirmed}}

	res, err := s.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, store.NewStoreError("registration", "confirm", "failed to confirm registration", MapError(err))
	}
	if res.ModifiedCount == 0 {
		return nil, store.ErrAlreadyConfirmed
	}
	return &store.UpdateResult{MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
}

// Delete implements store.RegistrationStore.Delete
func (s *RegistrationStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, store.NewStoreError("registration", "delete", "failed to delete registration", MapError(err))
	}
	if res.DeletedCount == 0 {
		return nil, store.ErrRegistrationNotFound
	}
	return &store.DeleteResult{DeletedCount: res.DeletedCount}, nil
}
