// Package ports defines the narrow interfaces the application core needs from
// storage, the payment gateway, the geocoding service, the delayed-delivery
// queue, the realtime channel and the integration event bus.
package ports

import (
	"context"
	"errors"

	"takeout/internal/core/domain/model/order"
)

// ErrConcurrentModification is returned by Update when the stored version no
// longer matches the one the aggregate was loaded with.
var ErrConcurrentModification = errors.New("order was modified concurrently")

// OrderRepository persists Order aggregates together with their line items.
type OrderRepository interface {
	// Add inserts the order and its line items and assigns the generated id to the aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the mutable order columns. Line items are never rewritten.
	// Returns ErrConcurrentModification when the version check fails.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking it.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate loads an order and locks its row until the transaction ends.
	// Must be called inside a started unit of work.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// GetByNumber loads an order by its external number without locking it.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)
}
