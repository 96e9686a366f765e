package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrMissingEmail indicates a verified token carries no email claim
	ErrMissingEmail = errors.New("authentication token has no email claim")
)

// IsUnauthenticated reports whether err means the caller presented no usable
// credentials, as opposed to a failure inside the verifier itself.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMissingEmail)
}
