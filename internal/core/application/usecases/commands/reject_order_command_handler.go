package commands

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/order"
)

// Refunder is satisfied by *appservices.CompensationEngine.
type Refunder interface {
	Refund(ctx context.Context, o *order.Order) error
}

// RejectOrderCommandHandler refunds a paid order before cancelling it.
// The refund runs while the order lock is held, so a concurrent cancellation
// cannot refund the same order twice. If the refund fails the order keeps its status.
type RejectOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      OrderLocker
	refunder   Refunder
}

func NewRejectOrderCommandHandler(uowFactory OrderUoWFactory, locks OrderLocker, refunder Refunder) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{uowFactory: uowFactory, locks: locks, refunder: refunder}
}

func (h RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, _, err := transition(ctx, h.locks, h.uowFactory, cmd.OrderID(),
		func(ctx context.Context, o *order.Order) (bool, error) {
			if err := o.ValidateReject(); err != nil {
				return false, err
			}
			if err := h.refunder.Refund(ctx, o); err != nil {
				return false, err
			}
			return true, o.Reject(cmd.Reason(), time.Now())
		})
	return err
}
