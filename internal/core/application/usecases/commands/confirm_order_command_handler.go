package commands

import (
	"context"

	"takeout/internal/core/domain/model/order"
)

type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      OrderLocker
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory, locks OrderLocker) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory, locks: locks}
}

func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, _, err := transition(ctx, h.locks, h.uowFactory, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			return true, o.Confirm()
		})
	return err
}
