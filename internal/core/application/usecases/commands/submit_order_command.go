package commands

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand turns the user's cart into an order delivered to one of
// the user's address book entries.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(userID, addressBookID, "no onions")
//	if err != nil {
//	    return fmt.Errorf("invalid submission: %w", err)
//	}
//	res, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	userID        int64
	addressBookID int64
	remark        string

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(userID, addressBookID int64, remark string) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setAddressBookID(addressBookID),
		cmd.setRemark(remark),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) UserID() int64 {
	return c.userID
}

func (c SubmitOrderCommand) AddressBookID() int64 {
	return c.addressBookID
}

func (c SubmitOrderCommand) Remark() string {
	return c.remark
}

func (c *SubmitOrderCommand) setUserID(userID int64) error {
	if err := requirePositive("user id", userID); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *SubmitOrderCommand) setAddressBookID(id int64) error {
	if err := requirePositive("address book id", id); err != nil {
		return err
	}
	c.addressBookID = id
	return nil
}

func (c *SubmitOrderCommand) setRemark(remark string) error {
	if err := limitText("remark", remark); err != nil {
		return err
	}
	c.remark = remark
	return nil
}
