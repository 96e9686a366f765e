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

// PostgresRegistrationStore implements store.RegistrationStore on the registrations table.
type PostgresRegistrationStore struct {
	db      store.DBTX
	timeout time.Duration
	logger  *slog.Logger
}

// NewPostgresRegistrationStore creates a new PostgresRegistrationStore.
func NewPostgresRegistrationStore(db store.DBTX, timeout time.Duration, logger *slog.Logger) *PostgresRegistrationStore {
	return &PostgresRegistrationStore{
		db:      db,
		timeout: timeout,
		logger:  logger.With("store", "registration"),
	}
}

var _ store.RegistrationStore = (*PostgresRegistrationStore)(nil)

// Create implements store.RegistrationStore.Create
func (s *PostgresRegistrationStore) Create(ctx context.Context, registration *domain.Registration) error {
	if err := registration.Validate(); err != nil {
		return store.NewStoreError("registration", "create", "invalid registration", errors.Join(store.ErrInvalidEntity, err))
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := encodeDoc(registration)
	if err != nil {
		return store.NewStoreError("registration", "create", "failed to encode registration", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO registrations (id, doc, created_at) VALUES ($1, $2::jsonb, $3)`,
		registration.ID.Hex(), doc, registration.CreatedAt,
	); err != nil {
		return store.NewStoreError("registration", "create", "failed to insert registration", MapError(err))
	}
	return nil
}

// ListByUser implements store.RegistrationStore.ListByUser
func (s *PostgresRegistrationStore) ListByUser(ctx context.Context, loggedUserEmail string) ([]*domain.Registration, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	regs, err := queryDocs[domain.Registration](ctx, s.db,
		`SELECT doc FROM registrations WHERE doc->>'loggedUserEmail' = $1 ORDER BY id`,
		domain.NormalizeEmail(loggedUserEmail))
	if err != nil {
		return nil, store.NewStoreError("registration", "list_by_user", "failed to query registrations", err)
	}
	return regs, nil
}

// List implements store.RegistrationStore.List
func (s *PostgresRegistrationStore) List(ctx context.Context) ([]*domain.Registration, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	regs, err := queryDocs[domain.Registration](ctx, s.db, `SELECT doc FROM registrations ORDER BY id`)
	if err != nil {
		return nil, store.NewStoreError("registration", "list", "failed to query registrations", err)
	}
	return regs, nil
}

// MarkPaid implements store.RegistrationStore.MarkPaid
func (s *PostgresRegistrationStore) MarkPaid(
	ctx context.Context,
	campID, participantEmail, transactionID string,
) (*store.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	patch := map[string]interface{}{
		"paymentStatus": domain.PaymentPaid,
		"transactionId": transactionID,
	}
	res, err := patchDocument(ctx, s.db, registrationsTable,
		`doc->>'campId' = $1 AND doc->>'participantEmail' = $2`,
		patch, campID, domain.NormalizeEmail(participantEmail))
	if err != nil {
		return nil, store.NewStoreError("registration", "mark_paid", "failed to update payment status", err)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrRegistrationNotFound
	}
	return res, nil
}

// Confirm implements store.RegistrationStore.Confirm
func (s *PostgresRegistrationStore) Confirm(ctx context.Context, id primitive.ObjectID) (*store.UpdateResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	patch := map[string]interface{}{"confirmationStatus": domain.ConfirmationConfirmed}
	res, err := patchDocument(ctx, s.db, registrationsTable,
		`id = $1 AND doc->>'confirmationStatus' IS DISTINCT FROM 'confirmed'`,
		patch, id.Hex())
	if err != nil {
		return nil, store.NewStoreError("registration", "confirm", "failed to confirm registration", err)
	}
	if res.ModifiedCount == 0 {
		return nil, store.ErrAlreadyConfirmed
	}
	return res, nil
}

// Delete implements store.RegistrationStore.Delete
func (s *PostgresRegistrationStore) Delete(ctx context.Context, id primitive.ObjectID) (*store.DeleteResult, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := deleteByID(ctx, s.db, registrationsTable, id.Hex(), store.ErrRegistrationNotFound)
	if err != nil && !errors.Is(err, store.ErrRegistrationNotFound) {
		return nil, store.NewStoreError("registration", "delete", "failed to delete registration", err)
	}
	return res, err
}
