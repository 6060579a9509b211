package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrUserCancelCommandIsNotConstructed = errors.New(
	"UserCancelCommand must be created via NewUserCancelCommand constructor",
)

// UserCancelCommand cancels the caller's own order before the merchant confirms it.
type UserCancelCommand struct { //nolint:recvcheck //using for validation
	userID  int64
	orderID int64

	guard guard.ConstructorGuard
}

func NewUserCancelCommand(userID, orderID int64) (UserCancelCommand, error) {
	if err := errors.Join(
		requirePositive("user id", userID),
		requirePositive("order id", orderID),
	); err != nil {
		return UserCancelCommand{}, err
	}

	return UserCancelCommand{
		userID:  userID,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UserCancelCommand) Validate() error {
	return c.guard.Validate(ErrUserCancelCommandIsNotConstructed)
}

func (c UserCancelCommand) UserID() int64 {
	return c.userID
}

func (c UserCancelCommand) OrderID() int64 {
	return c.orderID
}
