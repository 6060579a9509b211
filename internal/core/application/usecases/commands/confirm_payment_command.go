package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand applies a verified gateway callback. The same callback
// may arrive more than once.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderNumber   string
	transactionID string
	amount        kernel.Money

	guard guard.ConstructorGuard
}

func NewConfirmPaymentCommand(orderNumber, transactionID string, amount kernel.Money) (ConfirmPaymentCommand, error) {
	if err := errors.Join(
		requireText("order number", orderNumber),
		requireText("transaction id", transactionID),
		amount.Validate(),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		orderNumber:   orderNumber,
		transactionID: transactionID,
		amount:        amount,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

func (c ConfirmPaymentCommand) OrderNumber() string {
	return c.orderNumber
}

func (c ConfirmPaymentCommand) TransactionID() string {
	return c.transactionID
}

func (c ConfirmPaymentCommand) Amount() kernel.Money {
	return c.amount
}
