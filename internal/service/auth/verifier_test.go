package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifierFunc adapts a function to TokenVerifier.
type verifierFunc func(ctx context.Context, token string) (*Claims, error)

func (f verifierFunc) VerifyToken(ctx context.Context, token string) (*Claims, error) {
	return f(ctx, token)
}

func rejecting(err error) TokenVerifier {
	return verifierFunc(func(context.Context, string) (*Claims, error) { return nil, err })
}

func accepting(provider string) TokenVerifier {
	return verifierFunc(func(context.Context, string) (*Claims, error) {
		return &Claims{Email: testEmail, Provider: provider}, nil
	})
}

func TestChainVerifier(t *testing.T) {
	t.Parallel()

	failure := errors.New("certificate fetch failed")

	tests := []struct {
		name         string
		verifiers    []TokenVerifier
		wantProvider string
		wantErr      error
	}{
		{
			name:         "first accepts",
			verifiers:    []TokenVerifier{accepting(ProviderLocal), accepting(ProviderIdentity)},
			wantProvider: ProviderLocal,
		},
		{
			name:         "falls through rejection",
			verifiers:    []TokenVerifier{rejecting(ErrInvalidToken), accepting(ProviderIdentity)},
			wantProvider: ProviderIdentity,
		},
		{
			name:      "all reject returns first rejection",
			verifiers: []TokenVerifier{rejecting(ErrExpiredToken), rejecting(ErrInvalidToken)},
			wantErr:   ErrExpiredToken,
		},
		{
			name:      "failure is not masked",
			verifiers: []TokenVerifier{rejecting(ErrInvalidToken), rejecting(failure)},
			wantErr:   failure,
		},
		{
			name:         "failure ignored when another accepts",
			verifiers:    []TokenVerifier{rejecting(failure), accepting(ProviderLocal)},
			wantProvider: ProviderLocal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claims, err := NewChainVerifier(tt.verifiers...).VerifyToken(context.Background(), "tok")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantProvider, claims.Provider)
		})
	}

	t.Run("empty chain", func(t *testing.T) {
		_, err := NewChainVerifier().VerifyToken(context.Background(), "tok")
		assert.Error(t, err)
		assert.False(t, IsUnauthenticated(err))
	})
}
