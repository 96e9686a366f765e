package store

import (
	"context"

	"github.com/carecamp/carecamp-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationStore defines the interface for camp registration persistence.
type RegistrationStore interface {
	// Create saves a new registration.
	Create(ctx context.Context, registration *domain.Registration) error

	// ListByUser returns the registrations made by the signed-in user with the given email.
	ListByUser(ctx context.Context, loggedUserEmail string) ([]*domain.Registration, error)

	// List returns every registration.
	List(ctx context.Context) ([]*domain.Registration, error)

	// MarkPaid records a completed payment for the participant's registration in a camp.
	// Returns ErrRegistrationNotFound if no registration matched.
	MarkPaid(ctx context.Context, campID, participantEmail, transactionID string) (*UpdateResult, error)

	// Confirm marks a pending registration as confirmed in a single conditional
	// update. Returns ErrAlreadyConfirmed if the registration does not exist or
	// was confirmed already, so concurrent confirmations succeed exactly once.
	Confirm(ctx context.Context, id primitive.ObjectID) (*UpdateResult, error)

	// Delete removes a registration. Returns ErrRegistrationNotFound if it does not exist.
	Delete(ctx context.Context, id primitive.ObjectID) (*DeleteResult, error)
}
