package kernel

import (
	"errors"
	"fmt"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for every amount.
const MoneyScale = 2

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or ParseMoney constructors")

// Money is a non-negative currency amount rounded to MoneyScale digits.
type Money struct { //nolint:recvcheck //using for validation
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney rounds amount half-up to cents. Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	m := Money{guard: guard.NewConstructorGuard()}
	if err := m.setAmount(amount); err != nil {
		return Money{}, err
	}
	return m, nil
}

// ParseMoney accepts a decimal string such as "12.00".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	return NewMoney(d)
}

// MoneyFromCents builds an amount from an integer number of minor units.
func MoneyFromCents(cents int64) (Money, error) {
	return NewMoney(decimal.New(cents, -MoneyScale))
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Cents returns the amount in minor units, the form payment gateways expect.
func (m Money) Cents() int64 {
	return m.amount.Shift(MoneyScale).IntPart()
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns m+other. Both operands must be constructed.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	return NewMoney(m.amount.Add(other.amount))
}

// Mul returns m*quantity.
func (m Money) Mul(quantity int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, "inf")
	}
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}

func (m *Money) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%s is negative", amount.String()))
	}
	m.amount = amount.Round(MoneyScale)
	return nil
}
