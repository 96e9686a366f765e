package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentStatus tracks whether a registration has been paid for.
type PaymentStatus string

// Payment states.
const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// ConfirmationStatus tracks whether an administrator accepted a registration.
type ConfirmationStatus string

// Confirmation states.
const (
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
)

// Registration links a participant to a camp.
type Registration struct {
	ID                     primitive.ObjectID `json:"_id" bson:"_id"`
	CampID                 string             `json:"campId" bson:"campId"`
	CampName               string             `json:"campName" bson:"campName"`
	CampFees               float64            `json:"campFees" bson:"campFees"`
	Location               string             `json:"location,omitempty" bson:"location,omitempty"`
	HealthcareProfessional string             `json:"healthcareProfessional,omitempty" bson:"healthcareProfessional,omitempty"`
	ParticipantName        string             `json:"participantName" bson:"participantName"`
	ParticipantEmail       string             `json:"participantEmail" bson:"participantEmail"`
	LoggedUserEmail        string             `json:"loggedUserEmail" bson:"loggedUserEmail"`
	Age                    int                `json:"age,omitempty" bson:"age,omitempty"`
	Phone                  string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Gender                 string             `json:"gender,omitempty" bson:"gender,omitempty"`
	EmergencyContact       string             `json:"emergencyContact,omitempty" bson:"emergencyContact,omitempty"`
	PaymentStatus          PaymentStatus      `json:"paymentStatus" bson:"paymentStatus"`
	ConfirmationStatus     ConfirmationStatus `json:"confirmationStatus" bson:"confirmationStatus"`
	TransactionID          string             `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
	CreatedAt              time.Time          `json:"createdAt" bson:"createdAt"`
}

// NewRegistration prepares r for insertion. Status fields are always reset
// to unpaid and pending regardless of what the client sent.
func NewRegistration(r Registration) (*Registration, error) {
	reg := r
	reg.ID = primitive.NewObjectID()
	reg.ParticipantEmail = NormalizeEmail(reg.ParticipantEmail)
	reg.LoggedUserEmail = NormalizeEmail(reg.LoggedUserEmail)
	if reg.LoggedUserEmail == "" {
		reg.LoggedUserEmail = reg.ParticipantEmail
	}
	reg.PaymentStatus = PaymentUnpaid
	reg.ConfirmationStatus = ConfirmationPending
	reg.TransactionID = ""
	reg.CreatedAt = time.Now().UTC()

	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Validate checks if the Registration has valid data.
func (r *Registration) Validate() error {
	if r.ID.IsZero() {
		return NewValidationError("_id", "cannot be empty", ErrInvalidID)
	}
	if !IsValidID(r.CampID) {
		return NewValidationError("campId", "has invalid format", ErrInvalidID)
	}
	if strings.TrimSpace(r.ParticipantName) == "" {
		return NewValidationError("participantName", "cannot be empty", nil)
	}
	if !validateEmailFormat(r.ParticipantEmail) {
		return NewValidationError("participantEmail", "has invalid format", ErrInvalidEmail)
	}
	if !validateEmailFormat(r.LoggedUserEmail) {
		return NewValidationError("loggedUserEmail", "has invalid format", ErrInvalidEmail)
	}
	if r.CampFees < 0 {
		return NewValidationError("campFees", "cannot be negative", nil)
	}
	if r.Age < 0 {
		return NewValidationError("age", "cannot be negative", nil)
	}
	return nil
}
