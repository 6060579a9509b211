package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrTimeoutCancelCommandIsNotConstructed = errors.New(
	"TimeoutCancelCommand must be created via NewTimeoutCancelCommand constructor",
)

// TimeoutCancelCommand is issued by the payment timeout reaper.
type TimeoutCancelCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewTimeoutCancelCommand(orderID int64) (TimeoutCancelCommand, error) {
	if err := requirePositive("order id", orderID); err != nil {
		return TimeoutCancelCommand{}, err
	}
	return TimeoutCancelCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c TimeoutCancelCommand) Validate() error {
	return c.guard.Validate(ErrTimeoutCancelCommandIsNotConstructed)
}

func (c TimeoutCancelCommand) OrderID() int64 {
	return c.orderID
}
