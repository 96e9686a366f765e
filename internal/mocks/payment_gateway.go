package mocks

import (
	"context"

	"github.com/carecamp/carecamp-api/internal/service/payment"
)

// MockPaymentGateway implements payment.Gateway for testing.
type MockPaymentGateway struct {
	CreateCheckoutSessionFn func(ctx context.Context, params payment.CheckoutParams) (*payment.Session, error)
	RetrieveSessionFn       func(ctx context.Context, id string) (*payment.Session, error)

	// LastParams records the most recent CreateCheckoutSession input.
	LastParams payment.CheckoutParams
	Session    *payment.Session
	Err        error
}

var _ payment.Gateway = (*MockPaymentGateway)(nil)

// CreateCheckoutSession implements payment.Gateway
func (m *MockPaymentGateway) CreateCheckoutSession(
	ctx context.Context,
	params payment.CheckoutParams,
) (*payment.Session, error) {
	m.LastParams = params
	if m.CreateCheckoutSessionFn != nil {
		return m.CreateCheckoutSessionFn(ctx, params)
	}
	return m.Session, m.Err
}

// RetrieveSession implements payment.Gateway
func (m *MockPaymentGateway) RetrieveSession(ctx context.Context, id string) (*payment.Session, error) {
	if m.RetrieveSessionFn != nil {
		return m.RetrieveSessionFn(ctx, id)
	}
	return m.Session, m.Err
}
