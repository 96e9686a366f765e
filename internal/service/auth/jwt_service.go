package auth

import (
	"context"
)

// JWTService issues and verifies the tokens this service signs itself.
type JWTService interface {
	TokenVerifier

	// GenerateToken creates a signed JWT containing the email.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, email string) (string, error)
}
