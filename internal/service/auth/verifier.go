package auth

import (
	"context"
	"errors"
	"time"
)

// Token providers recorded on Claims.
const (
	ProviderLocal    = "local"
	ProviderIdentity = "identity"
)

// Claims is the verified principal attached to a request.
type Claims struct {
	Email     string    `json:"email"`
	Subject   string    `json:"sub,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	Provider  string    `json:"provider"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// TokenVerifier validates a bearer token and returns its claims.
// Implementations return ErrInvalidToken, ErrExpiredToken or ErrMissingEmail
// when the token is not acceptable; any other error is a verifier failure.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}

// ChainVerifier accepts a token if any of its verifiers does.
type ChainVerifier struct {
	verifiers []TokenVerifier
}

var _ TokenVerifier = (*ChainVerifier)(nil)

// NewChainVerifier returns a verifier that tries vs in order.
func NewChainVerifier(vs ...TokenVerifier) *ChainVerifier {
	return &ChainVerifier{verifiers: vs}
}

// VerifyToken returns the claims of the first verifier that accepts token.
// When every verifier rejects the token the first rejection is returned; a
// verifier failure takes precedence over rejections so it is not masked as a 401.
func (c *ChainVerifier) VerifyToken(ctx context.Context, token string) (*Claims, error) {
	if len(c.verifiers) == 0 {
		return nil, errors.New("no token verifiers configured")
	}

	var rejection, failure error
	for _, v := range c.verifiers {
		claims, err := v.VerifyToken(ctx, token)
		if err == nil {
			return claims, nil
		}
		if IsUnauthenticated(err) {
			if rejection == nil {
				rejection = err
			}
			continue
		}
		if failure == nil {
			failure = err
		}
	}

	if failure != nil {
		return nil, failure
	}
	return nil, rejection
}
