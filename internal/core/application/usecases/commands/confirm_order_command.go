package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand moves a paid order to Confirmed on behalf of the merchant.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(orderID int64) (ConfirmOrderCommand, error) {
	if err := requirePositive("order id", orderID); err != nil {
		return ConfirmOrderCommand{}, err
	}
	return ConfirmOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() int64 {
	return c.orderID
}
