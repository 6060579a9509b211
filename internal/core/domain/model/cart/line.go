// Package cart models the shopping cart lines the orchestrator consumes at submission.
package cart

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrLineIsNotConstructed = errs.NewValueIsRequiredError(
	"cart line must be created via NewLine or RestoreLine constructors")

// Line is one catalog item in a user's cart with its name, image and price
// copied when it was added.
type Line struct { //nolint:recvcheck //using for validation
	id        int64
	userID    int64
	name      string
	image     string
	dishID    int64
	setmealID int64
	flavor    string
	quantity  int
	unitPrice kernel.Money
	createdAt time.Time
	guard     guard.ConstructorGuard
}

func NewLine(
	userID int64,
	name, image string,
	dishID, setmealID int64,
	flavor string,
	quantity int,
	unitPrice kernel.Money,
	now time.Time,
) (Line, error) {
	l := Line{
		image:     image,
		flavor:    flavor,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		l.setUserID(userID),
		l.setName(name),
		l.setItemRef(dishID, setmealID),
		l.setQuantity(quantity),
		l.setUnitPrice(unitPrice),
	); err != nil {
		return Line{}, err
	}
	return l, nil
}

func RestoreLine(
	id, userID int64,
	name, image string,
	dishID, setmealID int64,
	flavor string,
	quantity int,
	unitPrice kernel.Money,
	createdAt time.Time,
) (Line, error) {
	l, err := NewLine(userID, name, image, dishID, setmealID, flavor, quantity, unitPrice, createdAt)
	if err != nil {
		return Line{}, err
	}
	l.id = id
	return l, nil
}

func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

func (l Line) ID() int64               { return l.id }
func (l Line) UserID() int64           { return l.userID }
func (l Line) Name() string            { return l.name }
func (l Line) Image() string           { return l.image }
func (l Line) DishID() int64           { return l.dishID }
func (l Line) SetmealID() int64        { return l.setmealID }
func (l Line) Flavor() string          { return l.flavor }
func (l Line) Quantity() int           { return l.quantity }
func (l Line) UnitPrice() kernel.Money { return l.unitPrice }
func (l Line) CreatedAt() time.Time    { return l.createdAt }

func (l *Line) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%d is not greater than 0", userID))
	}
	l.userID = userID
	return nil
}

func (l *Line) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	l.name = name
	return nil
}

func (l *Line) setItemRef(dishID, setmealID int64) error {
	if (dishID > 0) == (setmealID > 0) {
		return errs.NewValueIsInvalidErrorWithCause("item reference",
			fmt.Errorf("exactly one of dish %d and setmeal %d must be set", dishID, setmealID))
	}
	l.dishID = dishID
	l.setmealID = setmealID
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

func (l *Line) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	l.unitPrice = price
	return nil
}
