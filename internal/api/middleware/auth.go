package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/service/auth"
)

// Client-facing authentication messages.
const (
	msgTokenMissing  = "Unauthorized: token missing"
	msgInvalidToken  = "Unauthorized: invalid token"
	msgEmailMissing  = "Unauthorized: email missing from token"
	msgAuthFailure   = "Authentication error"
	bearerAuthPrefix = "Bearer "
)

// AuthMiddleware verifies bearer tokens for routes.
type AuthMiddleware struct {
	verifier auth.TokenVerifier
}

// NewAuthMiddleware creates a new AuthMiddleware backed by verifier.
func NewAuthMiddleware(verifier auth.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Authenticate verifies the bearer token from the Authorization header and
// adds its claims to the request context for authorized requests.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			shared.RespondWithError(w, r, http.StatusUnauthorized, msgTokenMissing)
			return
		}

		claims, err := m.verifier.VerifyToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrMissingEmail):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msgEmailMissing, err)
			case errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, msgTokenMissing)
			case auth.IsUnauthenticated(err):
				shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, msgInvalidToken, err)
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, msgAuthFailure, err)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(shared.SetClaims(r.Context(), claims)))
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is matched exactly, including its case.
func bearerToken(r *http.Request) (string, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), bearerAuthPrefix)
	if !found {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
