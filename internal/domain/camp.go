package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Camp is a scheduled medical camp participants can register for.
type Camp struct {
	ID                     primitive.ObjectID `json:"_id" bson:"_id"`
	CampName               string             `json:"campName" bson:"campName"`
	Image                  string             `json:"image,omitempty" bson:"image,omitempty"`
	CampFees               float64            `json:"campFees" bson:"campFees"`
	DateTime               string             `json:"dateTime,omitempty" bson:"dateTime,omitempty"`
	Location               string             `json:"location" bson:"location"`
	HealthcareProfessional string             `json:"healthcareProfessional" bson:"healthcareProfessional"`
	ParticipantCount       int                `json:"participantCount" bson:"participantCount"`
	Description            string             `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt              time.Time          `json:"createdAt" bson:"createdAt"`
}

// NewCamp assigns an ID and timestamp to c and validates it.
// The participant count of a new camp always starts at zero.
func NewCamp(c Camp) (*Camp, error) {
	camp := c
	camp.ID = primitive.NewObjectID()
	camp.CampName = strings.TrimSpace(camp.CampName)
	camp.ParticipantCount = 0
	camp.CreatedAt = time.Now().UTC()

	if err := camp.Validate(); err != nil {
		return nil, err
	}
	return &camp, nil
}

// Validate checks if the Camp has valid data.
func (c *Camp) Validate() error {
	if c.ID.IsZero() {
		return NewValidationError("_id", "cannot be empty", ErrInvalidID)
	}
	if c.CampName == "" {
		return NewValidationError("campName", "cannot be empty", nil)
	}
	if c.CampFees < 0 {
		return NewValidationError("campFees", "cannot be negative", nil)
	}
	if c.ParticipantCount < 0 {
		return NewValidationError("participantCount", "cannot be negative", nil)
	}
	return nil
}

// CampUpdate is a partial update of a camp's descriptive fields.
// Participant counts only change through increments.
type CampUpdate struct {
	CampName               *string
	Image                  *string
	CampFees               *float64
	DateTime               *string
	Location               *string
	HealthcareProfessional *string
	Description            *string
}

// Fields returns the set fields keyed by their document names.
func (u CampUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	setString(fields, "campName", u.CampName)
	setString(fields, "image", u.Image)
	if u.CampFees != nil {
		fields["campFees"] = *u.CampFees
	}
	setString(fields, "dateTime", u.DateTime)
	setString(fields, "location", u.Location)
	setString(fields, "healthcareProfessional", u.HealthcareProfessional)
	setString(fields, "description", u.Description)
	return fields
}

// Validate checks the fields that are present.
func (u CampUpdate) Validate() error {
	if len(u.Fields()) == 0 {
		return NewValidationError("camp", "has no fields to update", ErrEmptyUpdate)
	}
	if u.CampName != nil && strings.TrimSpace(*u.CampName) == "" {
		return NewValidationError("campName", "cannot be empty", nil)
	}
	if u.CampFees != nil && *u.CampFees < 0 {
		return NewValidationError("campFees", "cannot be negative", nil)
	}
	return nil
}
