package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrRejectOrderCommandIsNotConstructed = errors.New(
	"RejectOrderCommand must be created via NewRejectOrderCommand constructor",
)

// RejectOrderCommand declines an order waiting for the merchant. Paid orders are refunded.
type RejectOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	reason  string

	guard guard.ConstructorGuard
}

func NewRejectOrderCommand(orderID int64, reason string) (RejectOrderCommand, error) {
	cmd := RejectOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return RejectOrderCommand{}, err
	}

	return cmd, nil
}

func (c RejectOrderCommand) Validate() error {
	return c.guard.Validate(ErrRejectOrderCommandIsNotConstructed)
}

func (c RejectOrderCommand) OrderID() int64 {
	return c.orderID
}

func (c RejectOrderCommand) Reason() string {
	return c.reason
}

func (c *RejectOrderCommand) setOrderID(id int64) error {
	if err := requirePositive("order id", id); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *RejectOrderCommand) setReason(reason string) error {
	if err := requireText("reason", reason); err != nil {
		return err
	}
	c.reason = reason
	return nil
}
