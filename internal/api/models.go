package api

import (
	"reflect"

	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/store"
)

// Common request/response structures

// TokenRequest defines the payload for the token issuance endpoint.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenResponse carries a freshly issued local token.
type TokenResponse struct {
	Token string `json:"token"`
}

// InsertResponse reports the ID assigned to a created document.
type InsertResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// MessageResponse pairs a human-readable message with a store result.
type MessageResponse struct {
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}

// FeedbackResponse is returned after feedback is stored.
type FeedbackResponse struct {
	Message    string `json:"message"`
	InsertedID string `json:"insertedId"`
}

// PaymentSessionResponse carries the hosted checkout URL.
type PaymentSessionResponse struct {
	URL string `json:"url"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// CreateUserRequest defines the payload for account creation.
// A role sent by the client is accepted and ignored. Keys the request does
// not declare are kept in Extra, except those the user record reserves.
type CreateUserRequest struct {
	Email    string        `json:"email"    validate:"required,email"`
	Name     string        `json:"name"     validate:"max=200"`
	PhotoURL string        `json:"photoURL" validate:"omitempty,url"`
	Role     string        `json:"role"`
	Extra    domain.Fields `json:"-"`
}

var createUserKeys = domain.JSONKeys(reflect.TypeOf(CreateUserRequest{}))

type createUserFields CreateUserRequest

// UnmarshalJSON decodes the declared fields and collects the rest into Extra.
func (r *CreateUserRequest) UnmarshalJSON(data []byte) error {
	var known createUserFields
	extra, err := domain.SplitFields(data, &known, createUserKeys, domain.UserKeys)
	if err != nil {
		return err
	}
	*r = CreateUserRequest(known)
	r.Extra = extra
	return nil
}

// UpdateProfileRequest defines the fields a participant may change.
// Absent fields are left untouched. Any other key except email, role, _id
// and createdAt is stored as an additional profile field.
type UpdateProfileRequest struct {
	Name     *string       `json:"name"     validate:"omitempty,max=200"`
	PhotoURL *string       `json:"photoURL" validate:"omitempty,url"`
	Phone    *string       `json:"phone"    validate:"omitempty,max=50"`
	Address  *string       `json:"address"  validate:"omitempty,max=500"`
	Extra    domain.Fields `json:"-"`
}

var updateProfileKeys = domain.JSONKeys(reflect.TypeOf(UpdateProfileRequest{}))

type updateProfileFields UpdateProfileRequest

// UnmarshalJSON decodes the declared fields and collects the rest into Extra.
func (r *UpdateProfileRequest) UnmarshalJSON(data []byte) error {
	var known updateProfileFields
	extra, err := domain.SplitFields(data, &known, updateProfileKeys, domain.UserKeys)
	if err != nil {
		return err
	}
	*r = UpdateProfileRequest(known)
	r.Extra = extra
	return nil
}

// toDomain converts the request to a domain.ProfileUpdate.
func (r UpdateProfileRequest) toDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:     r.Name,
		PhotoURL: r.PhotoURL,
		Phone:    r.Phone,
		Address:  r.Address,
		Extra:    r.Extra,
	}
}

// CreateCampRequest defines the payload for adding a camp.
type CreateCampRequest struct {
	CampName               string  `json:"campName"               validate:"required"`
	Image                  string  `json:"image"`
	CampFees               float64 `json:"campFees"               validate:"gte=0"`
	DateTime               string  `json:"dateTime"`
	Location               string  `json:"location"`
	HealthcareProfessional string  `json:"healthcareProfessional"`
	Description            string  `json:"description"`
}

func (r CreateCampRequest) toDomain() domain.Camp {
	return domain.Camp{
		CampName:               r.CampName,
		Image:                  r.Image,
		CampFees:               r.CampFees,
		DateTime:               r.DateTime,
		Location:               r.Location,
		HealthcareProfessional: r.HealthcareProfessional,
		Description:            r.Description,
	}
}

// UpdateCampRequest defines a partial camp update.
type UpdateCampRequest struct {
	CampName               *string  `json:"campName"`
	Image                  *string  `json:"image"`
	CampFees               *float64 `json:"campFees" validate:"omitempty,gte=0"`
	DateTime               *string  `json:"dateTime"`
	Location               *string  `json:"location"`
	HealthcareProfessional *string  `json:"healthcareProfessional"`
	Description            *string  `json:"description"`
}

func (r UpdateCampRequest) toDomain() domain.CampUpdate {
	return domain.CampUpdate{
		CampName:               r.CampName,
		Image:                  r.Image,
		CampFees:               r.CampFees,
		DateTime:               r.DateTime,
		Location:               r.Location,
		HealthcareProfessional: r.HealthcareProfessional,
		Description:            r.Description,
	}
}

// CreateRegistrationRequest defines the payload for joining a camp.
// Payment and confirmation statuses are always set by the server.
type CreateRegistrationRequest struct {
	CampID                 string  `json:"campId"                 validate:"required"`
	CampName               string  `json:"campName"`
	CampFees               float64 `json:"campFees"               validate:"gte=0"`
	Location               string  `json:"location"`
	HealthcareProfessional string  `json:"healthcareProfessional"`
	ParticipantName        string  `json:"participantName"        validate:"required"`
	ParticipantEmail       string  `json:"participantEmail"       validate:"required,email"`
	LoggedUserEmail        string  `json:"loggedUserEmail"        validate:"omitempty,email"`
	Age                    int     `json:"age"                    validate:"gte=0"`
	Phone                  string  `json:"phone"`
	Gender                 string  `json:"gender"`
	EmergencyContact       string  `json:"emergencyContact"`
}

func (r CreateRegistrationRequest) toDomain() domain.Registration {
	return domain.Registration{
		CampID:                 r.CampID,
		CampName:               r.CampName,
		CampFees:               r.CampFees,
		Location:               r.Location,
		HealthcareProfessional: r.HealthcareProfessional,
		ParticipantName:        r.ParticipantName,
		ParticipantEmail:       r.ParticipantEmail,
		LoggedUserEmail:        r.LoggedUserEmail,
		Age:                    r.Age,
		Phone:                  r.Phone,
		Gender:                 r.Gender,
		EmergencyContact:       r.EmergencyContact,
	}
}

// MarkPaidRequest identifies the registration a payment belongs to.
type MarkPaidRequest struct {
	ParticipantEmail string `json:"participantEmail" validate:"required,email"`
	TransactionID    string `json:"transactionId"    validate:"required"`
}

// CreateFeedbackRequest defines the payload for leaving feedback. Other keys
// of the submission are kept in Extra; _id and createdAt are dropped.
type CreateFeedbackRequest struct {
	CampID           string        `json:"campId"`
	CampName         string        `json:"campName"`
	ParticipantName  string        `json:"participantName"`
	ParticipantEmail string        `json:"participantEmail" validate:"omitempty,email"`
	Rating           int           `json:"rating"           validate:"gte=0,lte=5"`
	Comment          string        `json:"comment"          validate:"max=5000"`
	Extra            domain.Fields `json:"-"`
}

var createFeedbackKeys = domain.JSONKeys(reflect.TypeOf(CreateFeedbackRequest{}))

type createFeedbackFields CreateFeedbackRequest

// UnmarshalJSON decodes the declared fields and collects the rest into Extra.
func (r *CreateFeedbackRequest) UnmarshalJSON(data []byte) error {
	var known createFeedbackFields
	extra, err := domain.SplitFields(data, &known, createFeedbackKeys, domain.FeedbackKeys)
	if err != nil {
		return err
	}
	*r = CreateFeedbackRequest(known)
	r.Extra = extra
	return nil
}

func (r CreateFeedbackRequest) toDomain() domain.Feedback {
	return domain.Feedback{
		CampID:           r.CampID,
		CampName:         r.CampName,
		ParticipantName:  r.ParticipantName,
		ParticipantEmail: r.ParticipantEmail,
		Rating:           r.Rating,
		Comment:          r.Comment,
		Extra:            r.Extra,
	}
}

// updateResponse converts a store result to its JSON form, treating a nil
// result as nothing matched.
func updateResponse(res *store.UpdateResult) store.UpdateResult {
	if res == nil {
		return store.UpdateResult{}
	}
	return *res
}

// deleteResponse converts a store result to its JSON form.
func deleteResponse(res *store.DeleteResult) store.DeleteResult {
	if res == nil {
		return store.DeleteResult{}
	}
	return *res
}
