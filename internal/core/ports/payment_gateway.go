package ports

import (
	"context"
	"errors"

	"takeout/internal/core/domain/model/kernel"
)

var (
	// ErrAlreadyPaid is returned when the gateway reports the order as settled.
	ErrAlreadyPaid = errors.New("order is already paid")

	// ErrGateway wraps any failure of an external call (payment or geocoding).
	ErrGateway = errors.New("gateway error")
)

type PrepayRequest struct {
	OrderNumber string
	Amount      kernel.Money
	Description string
	PayerID     string
}

// Prepay is what the customer's client needs to complete the payment.
type Prepay struct {
	Token         string
	TransactionID string
}

type RefundRequest struct {
	TransactionID string
	OrderNumber   string
	RefundNumber  string
	Total         kernel.Money
	Amount        kernel.Money
}

// PaymentCapture is a verified payment confirmation pushed by the gateway.
type PaymentCapture struct {
	OrderNumber   string
	TransactionID string
	Amount        kernel.Money
}

type PaymentGateway interface {
	// CreatePrepay opens a payment for the order. It must be idempotent per order number.
	CreatePrepay(ctx context.Context, req PrepayRequest) (Prepay, error)

	// Refund returns funds of a captured transaction and yields the gateway refund id.
	// It must be idempotent per refund number.
	Refund(ctx context.Context, req RefundRequest) (string, error)
}

// ErrEventIgnored marks a verified gateway event that carries no payment capture.
var ErrEventIgnored = errors.New("event does not confirm a payment")

// PaymentWebhookParser verifies an inbound gateway callback and extracts the capture.
type PaymentWebhookParser interface {
	ParseCapture(payload []byte, signature string) (PaymentCapture, error)
}
