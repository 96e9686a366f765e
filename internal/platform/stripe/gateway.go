// Package stripe implements payment.Gateway with Stripe Checkout.
package stripe

import (
	"context"
	"errors"
	"time"

	stripego "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"

	"github.com/carecamp/carecamp-api/internal/service/payment"
)

// Gateway creates and retrieves Stripe Checkout sessions.
type Gateway struct {
	sessions *session.Client
}

var _ payment.Gateway = (*Gateway)(nil)

// NewGateway returns a Gateway authenticated with secretKey.
func NewGateway(secretKey string) (*Gateway, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	return &Gateway{
		sessions: &session.Client{
			B:   stripego.GetBackend(stripego.APIBackend),
			Key: secretKey,
		},
	}, nil
}

// CreateCheckoutSession implements payment.Gateway
func (g *Gateway) CreateCheckoutSession(ctx context.Context, p payment.CheckoutParams) (*payment.Session, error) {
	params := checkoutParams(p)
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, gatewayError("create_session", err)
	}
	return toSession(s), nil
}

// RetrieveSession implements payment.Gateway
func (g *Gateway) RetrieveSession(ctx context.Context, id string) (*payment.Session, error) {
	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.sessions.Get(id, params)
	if err != nil {
		return nil, gatewayError("retrieve_session", err)
	}
	return toSession(s), nil
}

// checkoutParams builds a single-item card payment session.
func checkoutParams(p payment.CheckoutParams) *stripego.CheckoutSessionParams {
	params := &stripego.CheckoutSessionParams{
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
		Mode:               stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripego.String(p.Currency),
					UnitAmount: stripego.Int64(p.UnitAmount),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripego.String(p.ProductName),
						Description: stripego.String(p.Description),
					},
				},
				Quantity: stripego.Int64(1),
			},
		},
		SuccessURL: stripego.String(p.SuccessURL),
		CancelURL:  stripego.String(p.CancelURL),
	}
	if p.CustomerEmail != "" {
		params.CustomerEmail = stripego.String(p.CustomerEmail)
	}
	params.AddMetadata("campId", p.CampID)
	return params
}

func toSession(s *stripego.CheckoutSession) *payment.Session {
	out := &payment.Session{
		ID:            s.ID,
		URL:           s.URL,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntent = s.PaymentIntent.ID
	}
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	if s.ExpiresAt > 0 {
		out.ExpiresAt = time.Unix(s.ExpiresAt, 0).UTC()
	}
	return out
}

// gatewayError keeps Stripe's user-facing message when one is available.
func gatewayError(op string, err error) error {
	msg := err.Error()
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		msg = stripeErr.Msg
	}
	return &payment.GatewayError{Op: op, Message: msg, Err: err}
}
