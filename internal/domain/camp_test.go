package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(f float64) *float64 { return &f }

func TestNewCamp(t *testing.T) {
	camp, err := NewCamp(Camp{
		CampName:         " Free Eye Checkup ",
		CampFees:         500,
		Location:         "Sylhet",
		ParticipantCount: 40,
	})
	require.NoError(t, err)
	assert.False(t, camp.ID.IsZero())
	assert.Equal(t, "Free Eye Checkup", camp.CampName)
	assert.Equal(t, 0, camp.ParticipantCount, "new camps start with no participants")
	assert.False(t, camp.CreatedAt.IsZero())

	_, err = NewCamp(Camp{CampName: "", CampFees: 10})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewCamp(Camp{CampName: "Dental", CampFees: -1})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCampUpdate(t *testing.T) {
	tests := []struct {
		name    string
		update  CampUpdate
		wantErr error
		fields  map[string]interface{}
	}{
		{
			name:    "empty",
			update:  CampUpdate{},
			wantErr: ErrEmptyUpdate,
		},
		{
			name:    "negative fees",
			update:  CampUpdate{CampFees: floatPtr(-5)},
			wantErr: ErrValidation,
		},
		{
			name:    "blank name",
			update:  CampUpdate{CampName: strPtr("")},
			wantErr: ErrValidation,
		},
		{
			name:   "fees and location",
			update: CampUpdate{CampFees: floatPtr(0), Location: strPtr("Khulna")},
			fields: map[string]interface{}{"campFees": 0.0, "location": "Khulna"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.update.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.fields, tt.update.Fields())
		})
	}
}

func TestNewRegistration(t *testing.T) {
	campID := primitive.NewObjectID().Hex()

	reg, err := NewRegistration(Registration{
		CampID:             campID,
		CampName:           "Child Health",
		CampFees:           252,
		ParticipantName:    "Nadia",
		ParticipantEmail:   "Nadia@Example.com",
		PaymentStatus:      PaymentPaid,
		ConfirmationStatus: ConfirmationConfirmed,
		TransactionID:      "pi_forged",
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentUnpaid, reg.PaymentStatus)
	assert.Equal(t, ConfirmationPending, reg.ConfirmationStatus)
	assert.Empty(t, reg.TransactionID)
	assert.Equal(t, "nadia@example.com", reg.ParticipantEmail)
	assert.Equal(t, "nadia@example.com", reg.LoggedUserEmail, "logged user defaults to participant")

	_, err = NewRegistration(Registration{CampID: "bad", ParticipantName: "N", ParticipantEmail: "n@e.com"})
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = NewRegistration(Registration{CampID: campID, ParticipantName: "", ParticipantEmail: "n@e.com"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewFeedback(t *testing.T) {
	now := time.Date(2025, time.January, 12, 9, 30, 0, 0, time.FixedZone("BST", 6*3600))

	fb, err := NewFeedback(Feedback{Rating: 4, Comment: "Well organised", CreatedAt: time.Unix(0, 0)}, now)
	require.NoError(t, err)
	assert.Equal(t, now.UTC(), fb.CreatedAt, "creation time is assigned by the server")
	assert.False(t, fb.ID.IsZero())

	_, err = NewFeedback(Feedback{Rating: 6}, now)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewFeedback(Feedback{Rating: 3, CampID: "nope"}, now)
	assert.ErrorIs(t, err, ErrInvalidID)
}
