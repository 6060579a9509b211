package commands

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/order"
)

type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      OrderLocker
}

func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, locks OrderLocker) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{uowFactory: uowFactory, locks: locks}
}

// Handle moves DeliveryInProgress to Completed and stamps the delivery time.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, _, err := transition(ctx, h.locks, h.uowFactory, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			return true, o.Complete(time.Now())
		})
	return err
}
