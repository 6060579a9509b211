package commands

import (
	"context"
	"fmt"
	"time"

	"takeout/internal/core/domain/model/order"
)

// UserCancelCommandHandler cancels on behalf of the order owner, refunding first
// when the order was already paid. Orders of other users are reported as not found.
type UserCancelCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      OrderLocker
	refunder   Refunder
}

func NewUserCancelCommandHandler(uowFactory OrderUoWFactory, locks OrderLocker, refunder Refunder) UserCancelCommandHandler {
	return UserCancelCommandHandler{uowFactory: uowFactory, locks: locks, refunder: refunder}
}

func (h UserCancelCommandHandler) Handle(ctx context.Context, cmd UserCancelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, _, err := transition(ctx, h.locks, h.uowFactory, cmd.OrderID(),
		func(ctx context.Context, o *order.Order) (bool, error) {
			if !o.IsOwnedBy(cmd.UserID()) {
				return false, fmt.Errorf("%w: %d", ErrOrderNotFound, cmd.OrderID())
			}
			if err := o.ValidateUserCancel(); err != nil {
				return false, err
			}
			if err := h.refunder.Refund(ctx, o); err != nil {
				return false, err
			}
			return true, o.UserCancel(time.Now())
		})
	return err
}
