package queries

import (
	"context"

	"takeout/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetOrderStatisticsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStatisticsQueryHandler(db *gorm.DB) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{db: db}
}

func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (GetOrderStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	var res GetOrderStatisticsQueryResponse
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?),
			COUNT(*) FILTER (WHERE status = ?)
		FROM orders
		WHERE status IN (?, ?, ?)
	`,
		int(order.ToBeConfirmed), int(order.Confirmed), int(order.DeliveryInProgress),
		int(order.ToBeConfirmed), int(order.Confirmed), int(order.DeliveryInProgress),
	).Row().Scan(&res.ToBeConfirmed, &res.Confirmed, &res.DeliveryInProgress)
	if err != nil {
		return GetOrderStatisticsQueryResponse{}, err
	}

	return res, nil
}
