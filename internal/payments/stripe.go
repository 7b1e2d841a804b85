// Package payments wraps the Stripe-hosted checkout flow behind a small
// client interface so handlers can be tested without the provider.
package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
)

// Session is a freshly created provider-hosted checkout session.
type Session struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

// SessionStatus is the provider's current view of a checkout session.
type SessionStatus struct {
	SessionID string               `json:"session_id"`
	Status    domain.PaymentStatus `json:"payment_status"`
	Amount    int64                `json:"amount_total"`
	Currency  string               `json:"currency"`
	Metadata  map[string]string    `json:"metadata,omitempty"`
}

// WebhookEvent is a provider push notification about a session, already
// signature-verified and reduced to the fields the reconciler needs.
type WebhookEvent struct {
	SessionID string
	Status    domain.PaymentStatus
	Metadata  map[string]string
}

// CheckoutClient is the provider boundary used by the payment handlers.
type CheckoutClient interface {
	CreateSession(ctx context.Context, pkg domain.PaymentPackage, successURL, cancelURL string, metadata map[string]string) (*Session, error)
	GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
	// VerifyWebhook checks the provider signature and decodes the event.
	// Events the reconciler does not care about yield (nil, nil).
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// StripeClient implements CheckoutClient against the Stripe API.
type StripeClient struct {
	webhookSecret string
}

// NewStripeClient wires the Stripe API key and returns a client.
func NewStripeClient(apiKey, webhookSecret string) *StripeClient {
	stripe.Key = apiKey
	return &StripeClient{webhookSecret: webhookSecret}
}

// CreateSession opens a one-time-payment checkout session priced from
// the server-side package table.
func (c *StripeClient) CreateSession(ctx context.Context, pkg domain.PaymentPackage, successURL, cancelURL string, metadata map[string]string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(pkg.Currency),
					UnitAmount: stripe.Int64(pkg.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(pkg.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

// GetSessionStatus fetches the session from Stripe and maps its state
// onto the transaction status machine.
func (c *StripeClient) GetSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("get checkout session: %w", err)
	}
	return &SessionStatus{
		SessionID: sess.ID,
		Status:    mapSessionStatus(sess),
		Amount:    sess.AmountTotal,
		Currency:  string(sess.Currency),
		Metadata:  sess.Metadata,
	}, nil
}

// VerifyWebhook validates the Stripe-Signature header against the raw
// body and reduces checkout session events to a WebhookEvent.
func (c *StripeClient) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("verify webhook: %w", err)
	}

	var status domain.PaymentStatus
	switch string(event.Type) {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		status = domain.PaymentStatusPaid
	case "checkout.session.async_payment_failed":
		status = domain.PaymentStatusFailed
	case "checkout.session.expired":
		status = domain.PaymentStatusExpired
	default:
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode webhook session: %w", err)
	}

	// A completed session may still be awaiting an async payment method;
	// the unlock only happens once Stripe reports it paid.
	if status == domain.PaymentStatusPaid && sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		status = domain.PaymentStatusPending
	}

	return &WebhookEvent{
		SessionID: sess.ID,
		Status:    status,
		Metadata:  sess.Metadata,
	}, nil
}

func mapSessionStatus(sess *stripe.CheckoutSession) domain.PaymentStatus {
	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
		return domain.PaymentStatusPaid
	}
	if sess.Status == stripe.CheckoutSessionStatusExpired {
		return domain.PaymentStatusExpired
	}
	return domain.PaymentStatusPending
}
