package services

import (
	"errors"
	"fmt"
	"time"

	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/order"
)

// ErrEmptyCart is returned when a user submits an order with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// CartConsolidator converts between cart lines and order line items.
//
// Consolidation never mutates the cart. The caller clears it in the same unit of
// work that persists the order, so a failed submission leaves the cart intact.
//
// Example usage:
//
//	lines, _ := cartRepo.ListByUser(ctx, userID)
//	items, err := services.NewCartConsolidator().Consolidate(lines)
//	if errors.Is(err, services.ErrEmptyCart) {
//	    // Reject the submission
//	}
type CartConsolidator struct{}

func NewCartConsolidator() CartConsolidator {
	return CartConsolidator{}
}

// Consolidate freezes name, image, flavor and price of every cart line.
func (CartConsolidator) Consolidate(lines []cart.Line) ([]order.LineItem, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]order.LineItem, 0, len(lines))
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		item, err := order.NewLineItem(
			l.Name(), l.Image(),
			l.DishID(), l.SetmealID(),
			l.Flavor(), l.Quantity(), l.UnitPrice(),
		)
		if err != nil {
			return nil, fmt.Errorf("cart line %d: %w", l.ID(), err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Reorder builds new cart lines for userID from the items of a previous order.
func (CartConsolidator) Reorder(userID int64, items []order.LineItem, now time.Time) ([]cart.Line, error) {
	lines := make([]cart.Line, 0, len(items))
	for _, it := range items {
		l, err := cart.NewLine(
			userID,
			it.Name(), it.Image(),
			it.DishID(), it.SetmealID(),
			it.Flavor(), it.Quantity(), it.UnitPrice(),
			now,
		)
		if err != nil {
			return nil, fmt.Errorf("order item %d: %w", it.ID(), err)
		}
		lines = append(lines, l)
	}
	return lines, nil
}
