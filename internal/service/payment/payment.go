// Package payment prepares checkout sessions for camp fees and delegates them
// to a payment gateway.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrInvalidAmount is returned when a checkout amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidRequest is returned when a checkout request lacks a required field.
	ErrInvalidRequest = errors.New("invalid checkout request")
)

// GatewayError wraps a failure reported by the payment gateway. Message is
// the gateway's own description and is safe to show to the caller.
type GatewayError struct {
	Op      string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %s", e.Op, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// CheckoutRequest is a participant's request to pay for a camp.
// Amount is in the camp's listing currency.
type CheckoutRequest struct {
	CampTitle string  `json:"campTitle" validate:"required"`
	CampID    string  `json:"campId" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	UserEmail string  `json:"userEmail" validate:"omitempty,email"`
}

// CheckoutParams is everything the gateway needs to open a session.
type CheckoutParams struct {
	ProductName   string
	Description   string
	CampID        string
	CustomerEmail string
	Currency      string
	UnitAmount    int64
	SuccessURL    string
	CancelURL     string
}

// Session is the gateway-neutral view of a checkout session.
type Session struct {
	ID            string            `json:"id"`
	URL           string            `json:"url,omitempty"`
	Status        string            `json:"status,omitempty"`
	PaymentStatus string            `json:"payment_status,omitempty"`
	PaymentIntent string            `json:"payment_intent,omitempty"`
	AmountTotal   int64             `json:"amount_total"`
	Currency      string            `json:"currency,omitempty"`
	CustomerEmail string            `json:"customer_email,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	ExpiresAt     time.Time         `json:"expires_at,omitempty"`
}

// Gateway creates and retrieves checkout sessions.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)
	RetrieveSession(ctx context.Context, id string) (*Session, error)
}

// UnitAmount converts amount to gateway minor units at the given rate,
// rounding half away from zero.
func UnitAmount(amount, rate float64) int64 {
	return int64(math.Round(amount / rate * 100))
}

// Config controls how checkout sessions are built.
type Config struct {
	Currency       string
	ConversionRate float64
	FrontendURL    string
}

// Service builds checkout sessions for camp payments.
type Service struct {
	gateway Gateway
	cfg     Config
}

// NewService creates a Service backed by gateway.
func NewService(gateway Gateway, cfg Config) (*Service, error) {
	if gateway == nil {
		return nil, errors.New("payment gateway cannot be nil")
	}
	if cfg.ConversionRate <= 0 {
		return nil, errors.New("conversion rate must be positive")
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	cfg.Currency = strings.ToLower(cfg.Currency)
	return &Service{gateway: gateway, cfg: cfg}, nil
}

// Params translates req into gateway parameters.
func (s *Service) Params(req CheckoutRequest) (CheckoutParams, error) {
	if req.Amount <= 0 || math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return CheckoutParams{}, ErrInvalidAmount
	}
	if req.CampTitle == "" || req.CampID == "" {
		return CheckoutParams{}, fmt.Errorf("%w: campTitle and campId are required", ErrInvalidRequest)
	}

	unit := UnitAmount(req.Amount, s.cfg.ConversionRate)
	if unit <= 0 {
		return CheckoutParams{}, ErrInvalidAmount
	}

	return CheckoutParams{
		ProductName:   req.CampTitle,
		Description:   "Camp ID: " + req.CampID,
		CampID:        req.CampID,
		CustomerEmail: req.UserEmail,
		Currency:      s.cfg.Currency,
		UnitAmount:    unit,
		SuccessURL:    s.cfg.FrontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     s.cfg.FrontendURL + "/payment-cancelled",
	}, nil
}

// CreateCheckoutSession opens a checkout session for req.
func (s *Service) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error) {
	params, err := s.Params(req)
	if err != nil {
		return nil, err
	}
	return s.gateway.CreateCheckoutSession(ctx, params)
}

// GetSession retrieves a checkout session by ID.
func (s *Service) GetSession(ctx context.Context, id string) (*Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidRequest)
	}
	return s.gateway.RetrieveSession(ctx, id)
}
