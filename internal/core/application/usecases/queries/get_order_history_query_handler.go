package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler lists a user's orders with their line items.
type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) (Page[OrderView], error) {
	if err := query.Validate(); err != nil {
		return Page[OrderView]{}, err
	}

	where := "user_id = ?"
	args := []any{query.userID}
	if query.status != 0 {
		where += " AND status = ?"
		args = append(args, int(query.status))
	}

	var total int64
	if err := h.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM orders WHERE `+where, args...).Scan(&total).Error; err != nil {
		return Page[OrderView]{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+where+`
		ORDER BY order_time DESC, id DESC
		LIMIT ? OFFSET ?
	`, append(args, query.paging.limit(), query.paging.offset())...).Rows()
	if err != nil {
		return Page[OrderView]{}, err
	}

	views, err := scanOrders(rows)
	if err != nil {
		return Page[OrderView]{}, err
	}
	if err = attachLines(ctx, h.db, views); err != nil {
		return Page[OrderView]{}, err
	}

	return Page[OrderView]{Total: total, Records: views}, nil
}
