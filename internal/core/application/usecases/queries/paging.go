package queries

import (
	"time"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type paging struct {
	page     int
	pageSize int
}

func newPaging(page, pageSize int) (paging, error) {
	if page < 1 {
		return paging{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return paging{}, errs.NewValueIsOutOfRangeError("page size", pageSize, 1, MaxPageSize)
	}
	return paging{page: page, pageSize: pageSize}, nil
}

func (p paging) limit() int  { return p.pageSize }
func (p paging) offset() int { return (p.page - 1) * p.pageSize }

// optionalStatus accepts order.Unknown as "any status".
func optionalStatus(s order.Status) error {
	if s == order.Unknown {
		return nil
	}
	return s.Validate()
}

func optionalWindow(begin, end *time.Time) error {
	if begin != nil && end != nil && end.Before(*begin) {
		return errs.NewValueIsOutOfRangeError("end", end.Format(time.RFC3339), begin.Format(time.RFC3339), "unbounded")
	}
	return nil
}
