// Package stripe adapts the Stripe API to ports.PaymentGateway and verifies
// the payment webhooks Stripe pushes back.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/ports"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/refund"
	"github.com/stripe/stripe-go/v83/webhook"
)

const (
	metadataOrderNumber = "order_number"
	metadataPayerID     = "payer_id"

	eventPaymentSucceeded = "payment_intent.succeeded"
)

type Config struct {
	SecretKey     string
	WebhookSecret string
	Currency      string

	// BaseURL overrides the API endpoint, used against a local stub.
	BaseURL string
}

// Gateway implements ports.PaymentGateway on top of PaymentIntents and Refunds.
// Idempotency keys make repeated calls for the same order or refund number safe.
type Gateway struct {
	intents       paymentintent.Client
	refunds       refund.Client
	webhookSecret string
	currency      string
}

func NewGateway(cfg Config) (*Gateway, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}
	if cfg.WebhookSecret == "" {
		return nil, errors.New("stripe webhook secret is required")
	}
	if cfg.Currency == "" {
		cfg.Currency = string(stripe.CurrencyCNY)
	}

	backendCfg := &stripe.BackendConfig{MaxNetworkRetries: stripe.Int64(2)}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)

	return &Gateway{
		intents:       paymentintent.Client{B: backend, Key: cfg.SecretKey},
		refunds:       refund.Client{B: backend, Key: cfg.SecretKey},
		webhookSecret: cfg.WebhookSecret,
		currency:      cfg.Currency,
	}, nil
}

// CreatePrepay opens a PaymentIntent keyed by the order number. Stripe replays
// the original intent for a repeated key, so a succeeded intent means the order
// is already paid.
func (g *Gateway) CreatePrepay(ctx context.Context, req ports.PrepayRequest) (ports.Prepay, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(req.Amount.Cents()),
		Currency:    stripe.String(g.currency),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey("prepay-" + req.OrderNumber)
	params.AddMetadata(metadataOrderNumber, req.OrderNumber)
	params.AddMetadata(metadataPayerID, req.PayerID)

	intent, err := g.intents.New(params)
	if err != nil {
		return ports.Prepay{}, fmt.Errorf("%w: create payment intent for %s: %w", ports.ErrGateway, req.OrderNumber, err)
	}
	if intent.Status == stripe.PaymentIntentStatusSucceeded {
		return ports.Prepay{}, ports.ErrAlreadyPaid
	}

	return ports.Prepay{Token: intent.ClientSecret, TransactionID: intent.ID}, nil
}

// Refund returns req.Amount of the captured intent and yields the Stripe refund id.
func (g *Gateway) Refund(ctx context.Context, req ports.RefundRequest) (string, error) {
	if req.Amount.Cents() > req.Total.Cents() {
		return "", fmt.Errorf("%w: refund %s exceeds total %s", ports.ErrGateway, req.Amount, req.Total)
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(req.TransactionID),
		Amount:        stripe.Int64(req.Amount.Cents()),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	params.SetIdempotencyKey("refund-" + req.RefundNumber)
	params.AddMetadata(metadataOrderNumber, req.OrderNumber)

	r, err := g.refunds.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: refund %s: %w", ports.ErrGateway, req.OrderNumber, err)
	}
	if r.Status == stripe.RefundStatusFailed || r.Status == stripe.RefundStatusCanceled {
		return "", fmt.Errorf("%w: refund %s ended %s", ports.ErrGateway, r.ID, r.Status)
	}
	return r.ID, nil
}

// ParseCapture verifies the webhook signature and extracts the payment capture.
// Verified events of other types yield ports.ErrEventIgnored. Events rendered
// with an API version other than the SDK's are accepted; only the payment
// intent id, metadata and received amount are read from them.
func (g *Gateway) ParseCapture(payload []byte, signature string) (ports.PaymentCapture, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return ports.PaymentCapture{}, fmt.Errorf("verify webhook: %w", err)
	}
	if event.Type != eventPaymentSucceeded {
		return ports.PaymentCapture{}, fmt.Errorf("%w: %s", ports.ErrEventIgnored, event.Type)
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return ports.PaymentCapture{}, fmt.Errorf("decode payment intent: %w", err)
	}

	number := pi.Metadata[metadataOrderNumber]
	if number == "" {
		return ports.PaymentCapture{}, fmt.Errorf("payment intent %s has no order number", pi.ID)
	}
	amount, err := kernel.MoneyFromCents(pi.AmountReceived)
	if err != nil {
		return ports.PaymentCapture{}, err
	}

	return ports.PaymentCapture{OrderNumber: number, TransactionID: pi.ID, Amount: amount}, nil
}
