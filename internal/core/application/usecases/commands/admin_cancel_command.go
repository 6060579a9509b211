package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrAdminCancelCommandIsNotConstructed = errors.New(
	"AdminCancelCommand must be created via NewAdminCancelCommand constructor",
)

// AdminCancelCommand cancels any order that is not yet out for delivery. Paid orders are refunded.
type AdminCancelCommand struct { //nolint:recvcheck //using for validation
	orderID int64
	reason  string

	guard guard.ConstructorGuard
}

func NewAdminCancelCommand(orderID int64, reason string) (AdminCancelCommand, error) {
	cmd := AdminCancelCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
	); err != nil {
		return AdminCancelCommand{}, err
	}

	return cmd, nil
}

func (c AdminCancelCommand) Validate() error {
	return c.guard.Validate(ErrAdminCancelCommandIsNotConstructed)
}

func (c AdminCancelCommand) OrderID() int64 {
	return c.orderID
}

func (c AdminCancelCommand) Reason() string {
	return c.reason
}

func (c *AdminCancelCommand) setOrderID(id int64) error {
	if err := requirePositive("order id", id); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AdminCancelCommand) setReason(reason string) error {
	if err := requireText("reason", reason); err != nil {
		return err
	}
	c.reason = reason
	return nil
}
