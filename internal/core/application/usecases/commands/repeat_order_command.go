package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrRepeatOrderCommandIsNotConstructed = errors.New(
	"RepeatOrderCommand must be created via NewRepeatOrderCommand constructor",
)

// RepeatOrderCommand puts the items of a previous order back into the caller's cart.
type RepeatOrderCommand struct { //nolint:recvcheck //using for validation
	userID  int64
	orderID int64

	guard guard.ConstructorGuard
}

func NewRepeatOrderCommand(userID, orderID int64) (RepeatOrderCommand, error) {
	if err := errors.Join(
		requirePositive("user id", userID),
		requirePositive("order id", orderID),
	); err != nil {
		return RepeatOrderCommand{}, err
	}

	return RepeatOrderCommand{
		userID:  userID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RepeatOrderCommand) Validate() error {
	return c.guard.Validate(ErrRepeatOrderCommandIsNotConstructed)
}

func (c RepeatOrderCommand) UserID() int64 {
	return c.userID
}

func (c RepeatOrderCommand) OrderID() int64 {
	return c.orderID
}
