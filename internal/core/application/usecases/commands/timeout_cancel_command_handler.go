package commands

import (
	"context"
	"errors"
	"time"

	"takeout/internal/core/domain/model/order"
)

// TimeoutCancelCommandHandler cancels orders whose payment did not arrive in time.
// Tasks for orders that no longer exist or have moved on are absorbed silently.
type TimeoutCancelCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      OrderLocker
}

func NewTimeoutCancelCommandHandler(uowFactory OrderUoWFactory, locks OrderLocker) TimeoutCancelCommandHandler {
	return TimeoutCancelCommandHandler{uowFactory: uowFactory, locks: locks}
}

// Handle reports whether the order was cancelled by this call.
func (h TimeoutCancelCommandHandler) Handle(ctx context.Context, cmd TimeoutCancelCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	_, cancelled, err := transition(ctx, h.locks, h.uowFactory, cmd.OrderID(),
		func(_ context.Context, o *order.Order) (bool, error) {
			return o.TimeoutCancel(time.Now())
		})
	if errors.Is(err, ErrOrderNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return cancelled, nil
}
