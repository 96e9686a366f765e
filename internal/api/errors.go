package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/service/auth"
	"github.com/carecamp/carecamp-api/internal/service/payment"
	"github.com/carecamp/carecamp-api/internal/store"
	"github.com/go-playground/validator/v10"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var gatewayErr *payment.GatewayError
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case auth.IsUnauthenticated(err),
		errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case store.IsDuplicateError(err):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmptyUpdate),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrInvalidRequest),
		errors.Is(err, shared.ErrEmptyBody),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	// Gateway failures keep their 500 but carry the gateway's own message
	case errors.As(err, &gatewayErr):
		return http.StatusInternalServerError

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var gatewayErr *payment.GatewayError
	var validationErr *domain.ValidationError
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrMissingToken):
		return "Unauthorized: token missing"
	case errors.Is(err, auth.ErrMissingEmail):
		return "Unauthorized: email missing from token"
	case auth.IsUnauthenticated(err),
		errors.Is(err, domain.ErrUnauthenticated):
		return "Unauthorized: invalid token"

	// Authorization errors
	case errors.Is(err, domain.ErrForbidden):
		return "Forbidden: Admins only"

	// Not found errors
	case errors.Is(err, store.ErrAlreadyConfirmed):
		return "Participant not found or already confirmed"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrCampNotFound):
		return "Camp not found"
	case errors.Is(err, store.ErrRegistrationNotFound):
		return "Registration not found"
	case store.IsNotFoundError(err):
		return "Not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case store.IsDuplicateError(err):
		return "Entity already exists"

	// Bad request errors
	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"
	case errors.As(err, &validationErr):
		return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, payment.ErrInvalidAmount):
		return "Amount must be greater than zero"
	case errors.Is(err, payment.ErrInvalidRequest):
		return "Invalid payment request"

	// Gateway errors carry a message the gateway wrote for humans
	case errors.As(err, &gatewayErr):
		if gatewayErr.Message != "" {
			return gatewayErr.Message
		}
		return "Payment provider error"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and safe message for err and logs
// the redacted cause. fallbackMsg replaces the generic message for 500s so
// the client learns which operation failed.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string) {
	status := MapErrorToStatusCode(err)
	msg := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && msg == "An unexpected error occurred" && fallbackMsg != "" {
		msg = fallbackMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, msg, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fe := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe.Tag()))
	}

	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'TokenRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt", "gte":
		return "too small"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
