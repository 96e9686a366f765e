package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func strPtr(s string) *string { return &s }

func TestNewUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		user, err := NewUser("  Rahim@Example.com ", " Rahim ", "https://img.example/r.png")
		require.NoError(t, err)
		assert.False(t, user.ID.IsZero())
		assert.Equal(t, "rahim@example.com", user.Email)
		assert.Equal(t, "Rahim", user.Name)
		assert.Equal(t, RoleParticipant, user.Role)
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.IsAdmin())
	})

	tests := []struct {
		name  string
		email string
	}{
		{"empty email", ""},
		{"no at sign", "rahim.example.com"},
		{"display name form", "Rahim <rahim@example.com>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.email, "Rahim", "")
			assert.Nil(t, user)
			assert.ErrorIs(t, err, ErrInvalidEmail)
		})
	}
}

func TestUserValidate(t *testing.T) {
	user := &User{ID: primitive.NewObjectID(), Email: "a@b.com", Role: "superuser"}
	err := user.Validate()
	assert.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "role", vErr.Field)

	user.Role = RoleAdmin
	assert.NoError(t, user.Validate())
	assert.True(t, user.IsAdmin())

	user.ID = primitive.NilObjectID
	assert.ErrorIs(t, user.Validate(), ErrInvalidID)
}

func TestProfileUpdate(t *testing.T) {
	t.Run("empty update rejected", func(t *testing.T) {
		assert.ErrorIs(t, ProfileUpdate{}.Validate(), ErrEmptyUpdate)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		assert.Error(t, ProfileUpdate{Name: strPtr("  ")}.Validate())
	})

	t.Run("fields use document names", func(t *testing.T) {
		upd := ProfileUpdate{Name: strPtr("Karim"), PhotoURL: strPtr("https://img"), Address: strPtr("Dhaka")}
		require.NoError(t, upd.Validate())
		assert.Equal(t, map[string]interface{}{
			"name":     "Karim",
			"photoURL": "https://img",
			"address":  "Dhaka",
		}, upd.Fields())
	})
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()

	parsed, err := ParseID("id", id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := ParseID("id", bad)
		assert.ErrorIs(t, err, ErrInvalidID, "input %q", bad)
	}

	assert.True(t, IsValidID(id.Hex()))
	assert.False(t, IsValidID("not-an-id"))
}
