package queries

import (
	"context"

	"takeout/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOrderDetailQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderDetailQueryHandler(db *gorm.DB) GetOrderDetailQueryHandler {
	return GetOrderDetailQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for unknown orders and for orders of
// another user.
func (h GetOrderDetailQueryHandler) Handle(ctx context.Context, query GetOrderDetailQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = ? AND (? = 0 OR user_id = ?)
	`, query.orderID, query.ownerID, query.ownerID).Rows()
	if err != nil {
		return OrderView{}, err
	}

	views, err := scanOrders(rows)
	if err != nil {
		return OrderView{}, err
	}
	if len(views) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.orderID)
	}
	if err = attachLines(ctx, h.db, views); err != nil {
		return OrderView{}, err
	}

	return views[0], nil
}
