package appservices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrRefundFailed is returned when the gateway did not confirm a refund.
var ErrRefundFailed = errors.New("refund failed")

// refundNamespace scopes the name-based refund numbers.
var refundNamespace = uuid.MustParse("5b0f7c2e-3f1d-4c8e-9a57-1f3c2b6d8e90")

// RefundNumber derives a stable refund number from the order number, so a retried
// cancellation reuses the gateway idempotency key of the first attempt.
func RefundNumber(orderNumber string) string {
	return uuid.NewSHA1(refundNamespace, []byte(orderNumber)).String()
}

// CompensationEngine returns captured funds of an order that is being cancelled.
type CompensationEngine struct {
	gateway ports.PaymentGateway
	logger  *slog.Logger
}

func NewCompensationEngine(gateway ports.PaymentGateway, logger *slog.Logger) (*CompensationEngine, error) {
	if gateway == nil {
		return nil, errs.NewValueIsRequiredError("gateway")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CompensationEngine{gateway: gateway, logger: logger.With("component", "CompensationEngine")}, nil
}

// Refund is a no-op for orders that hold no funds. It never mutates the order;
// the caller applies the cancelling transition only after it returns nil.
func (e *CompensationEngine) Refund(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.NeedsRefund() {
		return nil
	}

	req := ports.RefundRequest{
		TransactionID: o.TransactionID(),
		OrderNumber:   o.Number(),
		RefundNumber:  RefundNumber(o.Number()),
		Total:         o.PaidAmount(),
		Amount:        o.PaidAmount(),
	}

	refundID, err := e.gateway.Refund(ctx, req)
	if err != nil {
		e.logger.Error("refund failed", "order_id", o.ID(), "number", o.Number(), "error", err)
		return fmt.Errorf("%w: order %s: %w", ErrRefundFailed, o.Number(), err)
	}

	e.logger.Info("refund issued",
		"order_id", o.ID(), "number", o.Number(), "refund_id", refundID, "amount", req.Amount.String())
	return nil
}
