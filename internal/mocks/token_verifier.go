package mocks

import (
	"context"

	"github.com/carecamp/carecamp-api/internal/service/auth"
)

// MockTokenVerifier implements auth.TokenVerifier for testing
type MockTokenVerifier struct {
	// VerifyTokenFn allows test cases to mock the VerifyToken behavior
	VerifyTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Default values used when VerifyTokenFn isn't defined
	Claims *auth.Claims
	Err    error
}

var _ auth.TokenVerifier = (*MockTokenVerifier)(nil)

// VerifyToken implements the auth.TokenVerifier interface
func (m *MockTokenVerifier) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.VerifyTokenFn != nil {
		return m.VerifyTokenFn(ctx, token)
	}
	return m.Claims, m.Err
}

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	MockTokenVerifier

	// GenerateTokenFn allows test cases to mock the GenerateToken behavior
	GenerateTokenFn func(ctx context.Context, email string) (string, error)

	Token    string
	TokenErr error
}

var _ auth.JWTService = (*MockJWTService)(nil)

// GenerateToken implements the auth.JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, email string) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, email)
	}
	return m.Token, m.TokenErr
}
