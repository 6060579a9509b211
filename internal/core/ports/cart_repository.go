package ports

import (
	"context"

	"takeout/internal/core/domain/model/cart"
)

// CartRepository is the slice of the cart subsystem the orchestrator uses.
type CartRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]cart.Line, error)

	// AddLines inserts new lines; existing lines for the same item are left alone.
	AddLines(ctx context.Context, lines []cart.Line) error

	// RemoveLines deletes the given lines of userID and reports how many rows it
	// removed. Lines added after the caller read the cart survive; lines already
	// removed by a concurrent checkout are not counted.
	RemoveLines(ctx context.Context, userID int64, ids []int64) (int64, error)
}
