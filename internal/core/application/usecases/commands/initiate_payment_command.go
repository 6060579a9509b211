package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrInitiatePaymentCommandIsNotConstructed = errors.New(
	"InitiatePaymentCommand must be created via NewInitiatePaymentCommand constructor",
)

// InitiatePaymentCommand opens a prepay transaction for the caller's order.
type InitiatePaymentCommand struct { //nolint:recvcheck //using for validation
	userID      int64
	orderNumber string

	guard guard.ConstructorGuard
}

func NewInitiatePaymentCommand(userID int64, orderNumber string) (InitiatePaymentCommand, error) {
	if err := errors.Join(
		requirePositive("user id", userID),
		requireText("order number", orderNumber),
	); err != nil {
		return InitiatePaymentCommand{}, err
	}

	return InitiatePaymentCommand{
		userID:      userID,
		orderNumber: orderNumber,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c InitiatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrInitiatePaymentCommandIsNotConstructed)
}

func (c InitiatePaymentCommand) UserID() int64 {
	return c.userID
}

func (c InitiatePaymentCommand) OrderNumber() string {
	return c.orderNumber
}
