package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand hands a confirmed order to delivery.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewDispatchOrderCommand(orderID int64) (DispatchOrderCommand, error) {
	if err := requirePositive("order id", orderID); err != nil {
		return DispatchOrderCommand{}, err
	}
	return DispatchOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) OrderID() int64 {
	return c.orderID
}
