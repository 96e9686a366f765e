package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/domain"
	"github.com/carecamp/carecamp-api/internal/platform/logger"
	"github.com/carecamp/carecamp-api/internal/service/auth"
)

// AuthHandler issues local tokens.
type AuthHandler struct {
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(jwtService auth.JWTService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}

	return &AuthHandler{
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "auth_handler")),
	}
}

// IssueToken handles POST /jwt. The token is bound to the submitted email
// only; no account needs to exist.
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req TokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Email is required", err)
		return
	}

	req.Email = domain.NormalizeEmail(req.Email)
	if req.Email == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Email is required")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), req.Email)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	log.Debug("token issued", slog.String("email_domain", emailDomain(req.Email)))
	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}

// emailDomain returns the part of email after the @ so logs never carry
// the full address.
func emailDomain(email string) string {
	if i := strings.LastIndexByte(email, '@'); i >= 0 {
		return email[i+1:]
	}
	return ""
}
