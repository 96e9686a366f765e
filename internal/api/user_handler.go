package api

import (
	"log/slog"
	"net/http"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/platform/logger"
	"github.com/carecamp/carecamp-api/internal/store"
)

// UserHandler handles account and profile requests.
type UserHandler struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users store.UserStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		users:  users,
		logger: logger.With(slog.String("component", "user_handler")),
	}
}

// CreateUser handles POST /users. Every new account is a participant.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := domain.NewUser(req.Email, req.Name, req.PhotoURL)
	if err == nil {
		user.Extra = req.Extra
		err = user.Validate()
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	log.Info("user created", slog.String("user_id", user.ID.Hex()))
	shared.RespondWithJSON(w, r, http.StatusCreated, InsertResponse{
		Acknowledged: true,
		InsertedID:   user.ID.Hex(),
	})
}

// GetCurrentUser handles GET /users, returning the caller's own record.
func (h *UserHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	email, err := getEmailFromContext(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ListUsers handles GET /all-users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	if users == nil {
		users = []*domain.User{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// UpdateProfile handles PATCH /users/participants-profile. Only the caller's
// own profile can be changed, and never its email or role.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	email, err := getEmailFromContext(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateProfileRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	update := req.toDomain()
	if err := update.Validate(); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	res, err := h.users.UpdateProfile(r.Context(), email, update)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update profile")
		return
	}

	log.Debug("profile updated", slog.Int64("modified", res.ModifiedCount))
	shared.RespondWithJSON(w, r, http.StatusOK, updateResponse(res))
}
