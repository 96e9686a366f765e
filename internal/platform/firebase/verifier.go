// Package firebase verifies identity-provider ID tokens with Firebase Auth.
package firebase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	fb "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/carecamp/carecamp-api/internal/platform/logger"
	"github.com/carecamp/carecamp-api/internal/service/auth"
)

// ErrMissingCredentials is returned when no service account key is configured.
var ErrMissingCredentials = errors.New("identity provider service account key is not configured")

// idTokenVerifier is the slice of the Firebase Auth client the verifier uses.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Verifier implements auth.TokenVerifier against Firebase Auth.
type Verifier struct {
	client idTokenVerifier
}

var _ auth.TokenVerifier = (*Verifier)(nil)

// NewVerifier creates a Verifier from a base64-encoded service account JSON key.
func NewVerifier(ctx context.Context, serviceAccountKey string) (*Verifier, error) {
	if serviceAccountKey == "" {
		return nil, ErrMissingCredentials
	}

	credentials, err := base64.StdEncoding.DecodeString(serviceAccountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode service account key: %w", err)
	}

	app, err := fb.NewApp(ctx, nil, option.WithCredentialsJSON(credentials))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return newVerifier(client), nil
}

func newVerifier(client idTokenVerifier) *Verifier {
	return &Verifier{client: client}
}

// VerifyToken verifies an ID token and maps it to auth.Claims.
// Rejected tokens yield auth.ErrExpiredToken or auth.ErrInvalidToken; a token
// without an email claim yields auth.ErrMissingEmail. Any other provider
// failure, such as a certificate fetch error, is returned wrapped.
func (v *Verifier) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	log := logger.FromContext(ctx)
	if token == "" {
		return nil, auth.ErrMissingToken
	}

	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		switch {
		case fbauth.IsIDTokenExpired(err):
			log.Debug("identity token expired")
			return nil, auth.ErrExpiredToken
		case fbauth.IsIDTokenInvalid(err), fbauth.IsIDTokenRevoked(err):
			log.Debug("identity token rejected", "error", err)
			return nil, auth.ErrInvalidToken
		case fbauth.IsCertificateFetchFailed(err):
			return nil, fmt.Errorf("identity provider unavailable: %w", err)
		default:
			return nil, fmt.Errorf("identity token verification failed: %w", err)
		}
	}

	return claimsFromToken(decoded)
}

func claimsFromToken(t *fbauth.Token) (*auth.Claims, error) {
	email, _ := t.Claims["email"].(string)
	if email == "" {
		return nil, auth.ErrMissingEmail
	}

	return &auth.Claims{
		Email:     email,
		Subject:   t.UID,
		Issuer:    t.Issuer,
		Provider:  auth.ProviderIdentity,
		IssuedAt:  time.Unix(t.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(t.Expires, 0).UTC(),
	}, nil
}
