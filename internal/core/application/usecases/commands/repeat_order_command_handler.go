package commands

import (
	"context"
	"fmt"
	"time"

	"takeout/internal/core/domain/services"
)

// RepeatOrderCommandHandler copies a previous order back into the cart.
type RepeatOrderCommandHandler struct {
	uowFactory   CartUoWFactory
	consolidator services.CartConsolidator
}

func NewRepeatOrderCommandHandler(uowFactory CartUoWFactory) RepeatOrderCommandHandler {
	return RepeatOrderCommandHandler{uowFactory: uowFactory, consolidator: services.NewCartConsolidator()}
}

// Handle returns the number of cart lines added.
func (h RepeatOrderCommandHandler) Handle(ctx context.Context, cmd RepeatOrderCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, notFound(err, cmd.OrderID())
	}
	if !o.IsOwnedBy(cmd.UserID()) {
		return 0, fmt.Errorf("%w: %d", ErrOrderNotFound, cmd.OrderID())
	}

	lines, err := h.consolidator.Reorder(cmd.UserID(), o.Lines(), time.Now())
	if err != nil {
		return 0, err
	}

	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CartRepository().AddLines(ctx, lines); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(lines), nil
}
