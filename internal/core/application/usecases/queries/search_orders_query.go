package queries

import (
	"errors"
	"strings"
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/guard"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

// OrderFilter narrows an operator search. Zero fields do not filter.
// Number and Phone match by substring; Begin and End bound the order time inclusively.
type OrderFilter struct {
	Status order.Status
	Number string
	Phone  string
	Begin  *time.Time
	End    *time.Time
}

// SearchOrdersQuery pages through all orders for the operator console, newest first.
type SearchOrdersQuery struct {
	filter OrderFilter
	paging paging

	guard guard.ConstructorGuard
}

func NewSearchOrdersQuery(filter OrderFilter, page, pageSize int) (SearchOrdersQuery, error) {
	if err := errors.Join(optionalStatus(filter.Status), optionalWindow(filter.Begin, filter.End)); err != nil {
		return SearchOrdersQuery{}, err
	}
	p, err := newPaging(page, pageSize)
	if err != nil {
		return SearchOrdersQuery{}, err
	}

	filter.Number = strings.TrimSpace(filter.Number)
	filter.Phone = strings.TrimSpace(filter.Phone)
	return SearchOrdersQuery{filter: filter, paging: p, guard: guard.NewConstructorGuard()}, nil
}

func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

func (q SearchOrdersQuery) Filter() OrderFilter {
	return q.filter
}
