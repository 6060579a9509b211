package order

import (
	"errors"
	"fmt"
	"strings"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem or RestoreLineItem constructors")

// LineItem is the frozen copy of one cart line attached to an order.
// Exactly one of DishID and SetmealID is set.
type LineItem struct { //nolint:recvcheck //using for validation
	id        int64
	name      string
	image     string
	dishID    int64
	setmealID int64
	flavor    string
	quantity  int
	unitPrice kernel.Money
	guard     guard.ConstructorGuard
}

func NewLineItem(
	name, image string,
	dishID, setmealID int64,
	flavor string,
	quantity int,
	unitPrice kernel.Money,
) (LineItem, error) {
	li := LineItem{
		image:  image,
		flavor: flavor,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		li.setName(name),
		li.setItemRef(dishID, setmealID),
		li.setQuantity(quantity),
		li.setUnitPrice(unitPrice),
	); err != nil {
		return LineItem{}, err
	}
	return li, nil
}

// RestoreLineItem rebuilds a persisted line item.
func RestoreLineItem(
	id int64,
	name, image string,
	dishID, setmealID int64,
	flavor string,
	quantity int,
	unitPrice kernel.Money,
) (LineItem, error) {
	li, err := NewLineItem(name, image, dishID, setmealID, flavor, quantity, unitPrice)
	if err != nil {
		return LineItem{}, err
	}
	li.id = id
	return li, nil
}

func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li LineItem) ID() int64               { return li.id }
func (li LineItem) Name() string            { return li.name }
func (li LineItem) Image() string           { return li.image }
func (li LineItem) DishID() int64           { return li.dishID }
func (li LineItem) SetmealID() int64        { return li.setmealID }
func (li LineItem) Flavor() string          { return li.flavor }
func (li LineItem) Quantity() int           { return li.quantity }
func (li LineItem) UnitPrice() kernel.Money { return li.unitPrice }

// Subtotal returns UnitPrice * Quantity.
func (li LineItem) Subtotal() (kernel.Money, error) {
	return li.unitPrice.Mul(li.quantity)
}

func (li *LineItem) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	li.name = name
	return nil
}

func (li *LineItem) setItemRef(dishID, setmealID int64) error {
	if (dishID > 0) == (setmealID > 0) {
		return errs.NewValueIsInvalidErrorWithCause("item reference",
			fmt.Errorf("exactly one of dish %d and setmeal %d must be set", dishID, setmealID))
	}
	li.dishID = dishID
	li.setmealID = setmealID
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	li.unitPrice = price
	return nil
}
