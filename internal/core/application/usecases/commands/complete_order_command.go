package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand marks a delivered order as completed.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID int64) (CompleteOrderCommand, error) {
	if err := requirePositive("order id", orderID); err != nil {
		return CompleteOrderCommand{}, err
	}
	return CompleteOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() int64 {
	return c.orderID
}
