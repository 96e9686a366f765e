package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/platform/logger"
	"github.com/carecamp/carecamp-api/internal/service/payment"
	"github.com/go-chi/chi/v5"
)

// PaymentService creates and looks up checkout sessions.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req payment.CheckoutRequest) (*payment.Session, error)
	GetSession(ctx context.Context, id string) (*payment.Session, error)
}

// PaymentHandler handles checkout session requests.
type PaymentHandler struct {
	payments PaymentService
	logger   *slog.Logger
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(payments PaymentService, logger *slog.Logger) *PaymentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PaymentHandler")
	}

	return &PaymentHandler{
		payments: payments,
		logger:   logger.With(slog.String("component", "payment_handler")),
	}
}

// CreateSession handles POST /create-payment-session
func (h *PaymentHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req payment.CheckoutRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, err := h.payments.CreateCheckoutSession(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create payment session")
		return
	}

	log.Info("checkout session created",
		slog.String("session_id", session.ID),
		slog.String("camp_id", req.CampID),
	)
	shared.RespondWithJSON(w, r, http.StatusOK, PaymentSessionResponse{URL: session.URL})
}

// GetSession handles GET /session-details/{sessionId}
func (h *PaymentHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.payments.GetSession(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve session")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, session)
}
