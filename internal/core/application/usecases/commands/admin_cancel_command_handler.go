package commands

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/order"
)

type AdminCancelCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      OrderLocker
	refunder   Refunder
}

func NewAdminCancelCommandHandler(uowFactory OrderUoWFactory, locks OrderLocker, refunder Refunder) AdminCancelCommandHandler {
	return AdminCancelCommandHandler{uowFactory: uowFactory, locks: locks, refunder: refunder}
}

// Handle refunds a paid order, then cancels it with the operator's reason.
func (h AdminCancelCommandHandler) Handle(ctx context.Context, cmd AdminCancelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, _, err := transition(ctx, h.locks, h.uowFactory, cmd.OrderID(),
		func(ctx context.Context, o *order.Order) (bool, error) {
			if err := o.ValidateAdminCancel(); err != nil {
				return false, err
			}
			if err := h.refunder.Refund(ctx, o); err != nil {
				return false, err
			}
			return true, o.AdminCancel(cmd.Reason(), time.Now())
		})
	return err
}
