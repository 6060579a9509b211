package queries

import (
	"errors"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrGetOrderDetailQueryIsNotConstructed = errors.New(
	"GetOrderDetailQuery must be created via NewGetOrderDetailQuery or NewGetOwnOrderDetailQuery constructor",
)

// GetOrderDetailQuery loads one order with its lines. Queries built with
// NewGetOwnOrderDetailQuery only match orders of the given user.
type GetOrderDetailQuery struct {
	orderID int64
	ownerID int64

	guard guard.ConstructorGuard
}

// NewGetOrderDetailQuery is the operator variant without an ownership check.
func NewGetOrderDetailQuery(orderID int64) (GetOrderDetailQuery, error) {
	if orderID <= 0 {
		return GetOrderDetailQuery{}, errs.NewValueIsInvalidError("order id")
	}
	return GetOrderDetailQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func NewGetOwnOrderDetailQuery(userID, orderID int64) (GetOrderDetailQuery, error) {
	if userID <= 0 {
		return GetOrderDetailQuery{}, errs.NewValueIsInvalidError("user id")
	}
	q, err := NewGetOrderDetailQuery(orderID)
	if err != nil {
		return GetOrderDetailQuery{}, err
	}
	q.ownerID = userID
	return q, nil
}

func (q GetOrderDetailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderDetailQueryIsNotConstructed)
}

func (q GetOrderDetailQuery) OrderID() int64 { return q.orderID }
