package order

import (
	"errors"
	"strings"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrDeliveryIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery must be created via NewDelivery constructor")

// Delivery is the address book entry copied into the order at submission.
// Later edits to the address book do not affect it.
type Delivery struct { //nolint:recvcheck //using for validation
	addressBookID int64
	consignee     string
	phone         string
	address       string
	guard         guard.ConstructorGuard
}

func NewDelivery(addressBookID int64, consignee, phone, address string) (Delivery, error) {
	d := Delivery{
		addressBookID: addressBookID,
		consignee:     consignee,
		guard:         guard.NewConstructorGuard(),
	}
	if err := errors.Join(d.setPhone(phone), d.setAddress(address)); err != nil {
		return Delivery{}, err
	}
	return d, nil
}

func (d Delivery) Validate() error {
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

func (d Delivery) AddressBookID() int64 { return d.addressBookID }
func (d Delivery) Consignee() string    { return d.consignee }
func (d Delivery) Phone() string        { return d.phone }
func (d Delivery) Address() string      { return d.address }

func (d *Delivery) setPhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	d.phone = phone
	return nil
}

func (d *Delivery) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	d.address = address
	return nil
}
