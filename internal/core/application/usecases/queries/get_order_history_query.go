package queries

import (
	"errors"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery pages through one user's orders, newest first.
// A zero status lists every status.
//
// Example:
//
//	query, err := NewGetOrderHistoryQuery(userID, order.Unknown, 1, 10)
//	if err != nil {
//	    return err
//	}
//	page, err := handler.Handle(ctx, query)
type GetOrderHistoryQuery struct {
	userID int64
	status order.Status
	paging paging

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(userID int64, status order.Status, page, pageSize int) (GetOrderHistoryQuery, error) {
	if userID <= 0 {
		return GetOrderHistoryQuery{}, errs.NewValueIsInvalidError("user id")
	}
	if err := optionalStatus(status); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	p, err := newPaging(page, pageSize)
	if err != nil {
		return GetOrderHistoryQuery{}, err
	}

	return GetOrderHistoryQuery{
		userID: userID,
		status: status,
		paging: p,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) UserID() int64        { return q.userID }
func (q GetOrderHistoryQuery) Status() order.Status { return q.status }
