package middleware

import (
	"errors"
	"net/http"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/store"
)

// RoleGate restricts routes to users whose stored role is admin.
// It must run after AuthMiddleware.Authenticate.
type RoleGate struct {
	users store.UserStore
}

// NewRoleGate creates a RoleGate that looks roles up in users.
func NewRoleGate(users store.UserStore) *RoleGate {
	return &RoleGate{users: users}
}

// RequireAdmin lets the request through only if the verified principal is
// a stored admin. The role is read from the store on every request.
func (g *RoleGate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := shared.GetEmail(r.Context())
		if email == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, msgEmailMissing)
			return
		}

		user, err := g.users.GetByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to verify user role", err)
			return
		}

		if !user.IsAdmin() {
			shared.RespondWithErrorAndLog(w, r, http.StatusForbidden, "Forbidden: Admins only",
				errors.New("non-admin role"), shared.WithElevatedLogLevel())
			return
		}

		next.ServeHTTP(w, r)
	})
}
