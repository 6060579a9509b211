package commands

import (
	"context"
	"fmt"
	"strconv"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"
)

// InitiatePaymentCommandHandler asks the gateway for a prepay token.
// The order is only read; payment state changes arrive through ConfirmPayment.
type InitiatePaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

func NewInitiatePaymentCommandHandler(uowFactory OrderUoWFactory, gateway ports.PaymentGateway) InitiatePaymentCommandHandler {
	return InitiatePaymentCommandHandler{uowFactory: uowFactory, gateway: gateway}
}

// Handle returns ports.ErrAlreadyPaid when the order is settled, either according
// to the stored pay status or according to the gateway.
func (h InitiatePaymentCommandHandler) Handle(ctx context.Context, cmd InitiatePaymentCommand) (ports.Prepay, error) {
	if err := cmd.Validate(); err != nil {
		return ports.Prepay{}, err
	}

	o, err := lookupByNumber(ctx, h.uowFactory.Create().OrderRepository(), cmd.OrderNumber())
	if err != nil {
		return ports.Prepay{}, err
	}
	if !o.IsOwnedBy(cmd.UserID()) {
		return ports.Prepay{}, fmt.Errorf("%w: %s", ErrOrderNotFound, cmd.OrderNumber())
	}
	if o.PayStatus() != order.Unpaid {
		return ports.Prepay{}, ports.ErrAlreadyPaid
	}
	if o.Status() != order.PendingPayment {
		return ports.Prepay{}, errs.NewInvalidTransitionError("pay", o.Status())
	}

	return h.gateway.CreatePrepay(ctx, ports.PrepayRequest{
		OrderNumber: o.Number(),
		Amount:      o.Amount(),
		Description: "Takeout order " + o.Number(),
		PayerID:     strconv.FormatInt(cmd.UserID(), 10),
	})
}
