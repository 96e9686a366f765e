package domain

import (
	"net/mail"
	"reflect"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the authorization level stored on a user record.
type Role string

// Supported roles.
const (
	RoleParticipant Role = "participant"
	RoleAdmin       Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleParticipant || r == RoleAdmin
}

// User is a registered CareCamp account. Email is the key the rest of the
// system uses to find it; ID is assigned by the application on creation.
// Extra holds any other profile fields the participant supplied; they are
// stored and returned at the top level of the document.
type User struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	Email     string             `json:"email" bson:"email"`
	PhotoURL  string             `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   string             `json:"address,omitempty" bson:"address,omitempty"`
	Role      Role               `json:"role" bson:"role"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	Extra     Fields             `json:"-" bson:",inline"`
}

// UserKeys are the document keys User declares.
var UserKeys = JSONKeys(reflect.TypeOf(User{}))

type userJSON User

// MarshalJSON flattens Extra into the encoded object.
func (u User) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(userJSON(u), u.Extra, UserKeys)
}

// UnmarshalJSON collects undeclared keys into Extra.
func (u *User) UnmarshalJSON(data []byte) error {
	var known userJSON
	extra, err := SplitFields(data, &known, UserKeys)
	if err != nil {
		return err
	}
	*u = User(known)
	u.Extra = extra
	return nil
}

// NewUser creates a participant with a fresh ID and creation timestamp.
// Roles are never taken from client input.
func NewUser(email, name, photoURL string) (*User, error) {
	user := &User{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		PhotoURL:  photoURL,
		Role:      RoleParticipant,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID.IsZero() {
		return NewValidationError("_id", "cannot be empty", ErrInvalidID)
	}
	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrInvalidEmail)
	}
	if !validateEmailFormat(u.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	if !u.Role.IsValid() {
		return NewValidationError("role", "must be participant or admin", nil)
	}
	return ValidateExtraFields(u.Extra, UserKeys)
}

// IsAdmin reports whether the user may use administrator routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ProfileUpdate carries the profile fields a participant may change about
// themselves. Email, role, ID and creation time are never part of it.
type ProfileUpdate struct {
	Name     *string
	PhotoURL *string
	Phone    *string
	Address  *string
	Extra    Fields
}

// Fields returns the set fields keyed by their document names.
func (p ProfileUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{}, len(p.Extra)+4)
	for key, value := range p.Extra {
		fields[key] = value
	}
	setString(fields, "name", p.Name)
	setString(fields, "photoURL", p.PhotoURL)
	setString(fields, "phone", p.Phone)
	setString(fields, "address", p.Address)
	return fields
}

// Validate rejects an update that changes nothing.
func (p ProfileUpdate) Validate() error {
	if len(p.Fields()) == 0 {
		return NewValidationError("profile", "has no fields to update", ErrEmptyUpdate)
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return NewValidationError("name", "cannot be empty", nil)
	}
	return ValidateExtraFields(p.Extra, UserKeys)
}

// NormalizeEmail trims surrounding whitespace and lowercases an address so
// that lookups by email are consistent.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmailFormat(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func setString(fields map[string]interface{}, key string, value *string) {
	if value != nil {
		fields[key] = *value
	}
}
