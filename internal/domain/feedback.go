package domain

import (
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxRating is the highest score a participant can give a camp.
const MaxRating = 5

// Feedback is an append-only review left by a participant. Extra holds any
// other fields of the submission, stored at the top level of the document.
type Feedback struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id"`
	CampID           string             `json:"campId,omitempty" bson:"campId,omitempty"`
	CampName         string             `json:"campName,omitempty" bson:"campName,omitempty"`
	ParticipantName  string             `json:"participantName,omitempty" bson:"participantName,omitempty"`
	ParticipantEmail string             `json:"participantEmail,omitempty" bson:"participantEmail,omitempty"`
	Rating           int                `json:"rating" bson:"rating"`
	Comment          string             `json:"comment" bson:"comment"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	Extra            Fields             `json:"-" bson:",inline"`
}

// FeedbackKeys are the document keys Feedback declares.
var FeedbackKeys = JSONKeys(reflect.TypeOf(Feedback{}))

type feedbackJSON Feedback

// MarshalJSON flattens Extra into the encoded object.
func (f Feedback) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(feedbackJSON(f), f.Extra, FeedbackKeys)
}

// UnmarshalJSON collects undeclared keys into Extra.
func (f *Feedback) UnmarshalJSON(data []byte) error {
	var known feedbackJSON
	extra, err := SplitFields(data, &known, FeedbackKeys)
	if err != nil {
		return err
	}
	*f = Feedback(known)
	f.Extra = extra
	return nil
}

// NewFeedback stamps f with an ID and the server's current time.
func NewFeedback(f Feedback, now time.Time) (*Feedback, error) {
	fb := f
	fb.ID = primitive.NewObjectID()
	fb.ParticipantEmail = NormalizeEmail(fb.ParticipantEmail)
	fb.CreatedAt = now.UTC()

	if err := fb.Validate(); err != nil {
		return nil, err
	}
	return &fb, nil
}

// Validate checks if the Feedback has valid data.
func (f *Feedback) Validate() error {
	if f.ID.IsZero() {
		return NewValidationError("_id", "cannot be empty", ErrInvalidID)
	}
	if f.Rating < 0 || f.Rating > MaxRating {
		return NewValidationError("rating", "must be between 0 and 5", nil)
	}
	if f.CampID != "" && !IsValidID(f.CampID) {
		return NewValidationError("campId", "has invalid format", ErrInvalidID)
	}
	if f.ParticipantEmail != "" && !validateEmailFormat(f.ParticipantEmail) {
		return NewValidationError("participantEmail", "has invalid format", ErrInvalidEmail)
	}
	return ValidateExtraFields(f.Extra, FeedbackKeys)
}
