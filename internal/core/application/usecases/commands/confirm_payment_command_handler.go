package commands

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/notification"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
)

// ConfirmPaymentCommandHandler marks an order paid and notifies the operators.
// A redelivered callback for an already paid order succeeds without side effects.
//
// A capture that lands on an order already cancelled unpaid is recorded and
// refunded under the order lock. If the refund fails nothing is committed and
// the error is returned, so the gateway redelivers the callback.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      OrderLocker
	notifier   ports.Notifier
	refunder   Refunder
}

func NewConfirmPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	locks OrderLocker,
	notifier ports.Notifier,
	refunder Refunder,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{uowFactory: uowFactory, locks: locks, notifier: notifier, refunder: refunder}
}

func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	found, err := lookupByNumber(ctx, h.uowFactory.Create().OrderRepository(), cmd.OrderNumber())
	if err != nil {
		return err
	}

	refunded := false
	o, applied, err := transition(ctx, h.locks, h.uowFactory, found.ID(),
		func(ctx context.Context, o *order.Order) (bool, error) {
			now := time.Now()
			if o.Status() != order.Cancelled {
				return o.MarkPaid(cmd.TransactionID(), cmd.Amount(), now)
			}

			recorded, err := o.RecordLateCapture(cmd.TransactionID(), cmd.Amount(), now)
			if err != nil || !recorded {
				return false, err
			}
			if err = h.refunder.Refund(ctx, o); err != nil {
				return false, err
			}
			refunded = true
			return true, o.MarkRefunded()
		})
	if err != nil {
		return err
	}

	if applied && !refunded {
		h.notifier.Broadcast(notification.NewOrderEvent(o.ID(), o.Number()))
	}
	return nil
}
