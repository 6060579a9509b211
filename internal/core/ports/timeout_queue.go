package ports

import (
	"context"
	"time"
)

// TimeoutTask asks for a payment timeout check of OrderID no earlier than FireAt.
type TimeoutTask struct {
	OrderID int64
	FireAt  time.Time
}

type TimeoutScheduler interface {
	Schedule(ctx context.Context, task TimeoutTask) error
}

// TimeoutQueue is the consumer side of the delayed-delivery mechanism.
// Claimed tasks are redelivered after a lease unless acknowledged.
type TimeoutQueue interface {
	TimeoutScheduler
	Claim(ctx context.Context, now time.Time, limit int) ([]TimeoutTask, error)
	Ack(ctx context.Context, orderID int64) error
}
