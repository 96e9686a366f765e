package auth

import (
	"context"
	"testing"
	"time"

	"github.com/carecamp/carecamp-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret      = "test-secret-that-is-long-enough-for-testing"
	wrongSecret     = "wrong-secret-that-is-long-enough-for-testing"
	testEmail       = "a@b.com"
	testLifetime    = 7 * 24 * time.Hour
	testClockSkew   = time.Minute
	testTokenIssuer = "someone-else"
)

// newTestJWTService builds a service with a fixed clock.
func newTestJWTService(secret string, lifetime time.Duration, now func() time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      now,
		clockSkew:     testClockSkew,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.AuthConfig
		wantErr bool
	}{
		{
			name: "valid config",
			cfg:  config.AuthConfig{JWTSecret: testSecret, TokenLifetime: testLifetime},
		},
		{
			name:    "short secret",
			cfg:     config.AuthConfig{JWTSecret: "too-short", TokenLifetime: testLifetime},
			wantErr: true,
		},
		{
			name:    "zero lifetime",
			cfg:     config.AuthConfig{JWTSecret: testSecret},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, err := NewJWTService(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, svc)
		})
	}
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime))

	t.Run("generates verifiable token", func(t *testing.T) {
		t.Parallel()
		token, err := svc.GenerateToken(context.Background(), testEmail)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.VerifyToken(context.Background(), token)
		require.NoError(t, err)

		assert.Equal(t, testEmail, claims.Email)
		assert.Equal(t, ProviderLocal, claims.Provider)
		assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
		assert.Equal(t, fixedTime.Add(testLifetime).Unix(), claims.ExpiresAt.Unix())
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("each token has a unique id", func(t *testing.T) {
		t.Parallel()
		first, err := svc.GenerateToken(context.Background(), testEmail)
		require.NoError(t, err)
		second, err := svc.GenerateToken(context.Background(), testEmail)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("requires email", func(t *testing.T) {
		t.Parallel()
		_, err := svc.GenerateToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrMissingEmail)
	})
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	signRaw := func(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) (*hmacJWTService, string)
		wantErr   error
	}{
		{
			name: "valid token",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				svc := newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime))
				token, err := svc.GenerateToken(context.Background(), testEmail)
				require.NoError(t, err)
				return svc, token
			},
		},
		{
			name: "within clock skew after expiry",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				gen := newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime))
				token, err := gen.GenerateToken(context.Background(), testEmail)
				require.NoError(t, err)
				later := fixedTime.Add(testLifetime + testClockSkew/2)
				return newTestJWTService(testSecret, testLifetime, fixedClock(later)), token
			},
		},
		{
			name: "expired token",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				gen := newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime))
				token, err := gen.GenerateToken(context.Background(), testEmail)
				require.NoError(t, err)
				later := fixedTime.Add(testLifetime + time.Hour)
				return newTestJWTService(testSecret, testLifetime, fixedClock(later)), token
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "rotated secret",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				gen := newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime))
				token, err := gen.GenerateToken(context.Background(), testEmail)
				require.NoError(t, err)
				return newTestJWTService(wrongSecret, testLifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "malformed token",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				return newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime)), "this.is.not.a.valid.jwt.token"
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "empty token",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				return newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime)), ""
			},
			wantErr: ErrMissingToken,
		},
		{
			name: "unexpected algorithm",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				token := signRaw(t, jwt.SigningMethodHS512, []byte(testSecret), jwtCustomClaims{
					Email: testEmail,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				})
				return newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "no expiry",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				token := signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwtCustomClaims{Email: testEmail})
				return newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "no email",
			setupFunc: func(t *testing.T) (*hmacJWTService, string) {
				token := signRaw(t, jwt.SigningMethodHS256, []byte(testSecret), jwtCustomClaims{
					RegisteredClaims: jwt.RegisteredClaims{
						Issuer:    testTokenIssuer,
						ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
					},
				})
				return newTestJWTService(testSecret, testLifetime, fixedClock(fixedTime)), token
			},
			wantErr: ErrMissingEmail,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, token := tt.setupFunc(t)
			claims, err := svc.VerifyToken(context.Background(), token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsUnauthenticated(err))
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testEmail, claims.Email)
		})
	}
}
