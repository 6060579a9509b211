package ports

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/notification"
)

// Notifier fans events out to connected operator clients. Broadcast must not block.
type Notifier interface {
	Broadcast(event notification.Event)
}

// OrderDispatched is the integration event emitted when delivery starts.
type OrderDispatched struct {
	EventID      string    `json:"eventId"`
	OrderID      int64     `json:"orderId"`
	Number       string    `json:"number"`
	UserID       int64     `json:"userId"`
	Consignee    string    `json:"consignee"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Amount       string    `json:"amount"`
	DispatchedAt time.Time `json:"dispatchedAt"`
}

type EventPublisher interface {
	PublishOrderDispatched(ctx context.Context, event OrderDispatched) error
}
