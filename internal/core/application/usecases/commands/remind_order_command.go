package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrRemindOrderCommandIsNotConstructed = errors.New(
	"RemindOrderCommand must be created via NewRemindOrderCommand constructor",
)

// RemindOrderCommand asks the operators to hurry with the caller's order.
type RemindOrderCommand struct { //nolint:recvcheck //using for validation
	userID  int64
	orderID int64

	guard guard.ConstructorGuard
}

func NewRemindOrderCommand(userID, orderID int64) (RemindOrderCommand, error) {
	if err := errors.Join(
		requirePositive("user id", userID),
		requirePositive("order id", orderID),
	); err != nil {
		return RemindOrderCommand{}, err
	}

	return RemindOrderCommand{
		userID:  userID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RemindOrderCommand) Validate() error {
	return c.guard.Validate(ErrRemindOrderCommandIsNotConstructed)
}

func (c RemindOrderCommand) UserID() int64 {
	return c.userID
}

func (c RemindOrderCommand) OrderID() int64 {
	return c.orderID
}
